package main

import (
	"os"

	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/errors"
)

// interactiveCommands take over the terminal, so they get no startup logs.
var interactiveCommands = map[string]bool{
	"demo":  true,
	"watch": true,
}

func main() {
	os.Exit(run(os.Args[1:], cmd.Execute))
}

func run(args []string, execute func() error) int {
	return runWith(args, execute, errors.NewDefaultCLIHandler())
}

func runWith(args []string, execute func() error, handler errors.ErrorHandler) int {
	interactive := len(args) > 0 && interactiveCommands[args[0]]
	if !interactive {
		colors.StructuredInfo("startup", "main", "started", nil, "", nil)
	}
	if err := execute(); err != nil {
		errors.Report(handler, err)
		if !interactive {
			colors.StructuredError("startup", "main", "failed", err, "", nil)
		}
		return 1
	}
	if !interactive {
		colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	}
	return 0
}
