package main

import (
	"strings"

	"github.com/cristianoliveira/msgstack/cmd"
	"github.com/cristianoliveira/msgstack/internal/app"
	"github.com/spf13/cobra"
)

type demoClient interface {
	app.DemoClient
	BundledScenarios() []string
}

// NewDemoCmd creates the demo command with explicit dependencies.
func NewDemoCmd(client demoClient) *cobra.Command {
	if client == nil {
		panic("NewDemoCmd: client dependency cannot be nil")
	}

	var loopFlag bool

	demoCmd := &cobra.Command{
		Use:   "demo [scenario]",
		Short: "Play a scenario in the terminal host",
		Long: `Play a scenario in the terminal host.

The scenario is a TOML or YAML file of timed steps. Without an argument the
bundled demo plays. Bundled scenarios: ` + strings.Join(client.BundledScenarios(), ", ") + `.

Keys: d/enter dismiss the front message, D/x dismiss all, s/space toggle
suspension, ? help, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := app.DemoInput{Loop: loopFlag}
			if len(args) == 1 {
				input.Scenario = args[0]
			}
			return app.NewDemoUseCase(client).Execute(cmd.Context(), input)
		},
	}

	demoCmd.Flags().BoolVar(&loopFlag, "loop", false, "Replay the scenario until you quit")

	return demoCmd
}

var demoCmd = NewDemoCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(demoCmd)
}
