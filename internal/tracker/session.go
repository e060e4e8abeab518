package tracker

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Session states and events.
const (
	sessionStopped = "stopped"
	sessionRunning = "running"

	eventStart = "start"
	eventStop  = "stop"
)

type sessionContext struct {
	StartTimestamp int64
}

// sessionMachine tracks whether a work session may be started or stopped.
// It is rebuilt from the persisted state on every operation.
type sessionMachine struct {
	interpreter *statekit.Interpreter[sessionContext]
}

func newSessionMachine(st State) (*sessionMachine, error) {
	initial := sessionStopped
	if st.Running() {
		initial = sessionRunning
	}

	builder := statekit.NewMachine[sessionContext]("session").
		WithInitial(statekit.StateID(initial)).
		WithContext(sessionContext{StartTimestamp: st.StartTimestamp})

	builder.State(sessionStopped).
		On(eventStart).Target(sessionRunning).
		Done()

	builder.State(sessionRunning).
		On(eventStop).Target(sessionStopped).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build session machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &sessionMachine{interpreter: interpreter}, nil
}

// fire sends event and reports whether the machine changed state.
func (m *sessionMachine) fire(event string) bool {
	before := m.current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	return m.current() != before
}

func (m *sessionMachine) current() string {
	return string(m.interpreter.State().Value)
}
