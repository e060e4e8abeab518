// Package filestore keeps the tracker state in a human-readable YAML file.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/sadopc/hourtrack/internal/config"
	"github.com/sadopc/hourtrack/internal/tracker"
	"gopkg.in/yaml.v3"
)

const (
	StateFile    = "state.yaml"
	SettingsFile = "settings.yaml"

	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600
)

type Store struct {
	dir         string
	retryConfig retry.Config
}

var _ tracker.StateStore = (*Store)(nil)

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, unavailable("create state directory", err)
	}
	return &Store{
		dir: dir,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}, nil
}

// Path returns the state file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, StateFile)
}

func (s *Store) Close() error {
	return nil
}

// Load returns the stored record, writing the empty one when the file does
// not exist yet.
func (s *Store) Load() (tracker.State, error) {
	if _, err := os.Stat(s.Path()); errors.Is(err, fs.ErrNotExist) {
		if err := s.Save(tracker.State{}); err != nil {
			return tracker.State{}, err
		}
		return tracker.State{}, nil
	}

	retryer := retry.New[tracker.State](s.retryConfig)
	st, err := retryer.Do(context.Background(), func(ctx context.Context) (tracker.State, error) {
		// #nosec G304 -- path is built from the configured state directory
		data, err := os.ReadFile(s.Path())
		if err != nil {
			return tracker.State{}, fmt.Errorf("read state file: %w", err)
		}
		var st tracker.State
		if err := yaml.Unmarshal(data, &st); err != nil {
			return tracker.State{}, fmt.Errorf("decode state file: %w", err)
		}
		return st, nil
	})
	if err != nil {
		return tracker.State{}, unavailable("load state", err)
	}
	if len(st.WeekHistory) == 0 {
		st.WeekHistory = nil
	}
	return st, nil
}

// Save replaces the state file atomically.
func (s *Store) Save(st tracker.State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return unavailable("encode state", err)
	}
	if err := s.writeFile(StateFile, data); err != nil {
		return unavailable("save state", err)
	}
	return nil
}

// Clear removes the state file and writes the empty record.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return unavailable("remove state file", err)
	}
	return s.Save(tracker.State{})
}

func (s *Store) GetSetting(key string) (string, error) {
	settings, err := s.readSettings()
	if err != nil {
		return "", err
	}
	v, ok := settings[key]
	if !ok {
		return "", fmt.Errorf("get setting %q: %w", key, config.ErrSettingNotFound)
	}
	return v, nil
}

func (s *Store) SetSetting(key, value string) error {
	settings, err := s.readSettings()
	if err != nil {
		return err
	}
	settings[key] = value

	data, err := yaml.Marshal(settings)
	if err != nil {
		return unavailable("encode settings", err)
	}
	if err := s.writeFile(SettingsFile, data); err != nil {
		return unavailable("save settings", err)
	}
	return nil
}

func (s *Store) readSettings() (map[string]string, error) {
	settings := map[string]string{}
	data, err := os.ReadFile(filepath.Join(s.dir, SettingsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, unavailable("read settings", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, unavailable("decode settings", err)
	}
	if settings == nil {
		settings = map[string]string{}
	}
	return settings, nil
}

// writeFile writes through a temp file in the same directory and renames it
// over name, so readers never see a partial file.
func (s *Store) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmpName, filepath.Join(s.dir, name))
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", tracker.ErrStorageUnavailable, op, err)
}
