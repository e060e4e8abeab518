package main

import (
	"os"

	"github.com/sadopc/hourtrack/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
