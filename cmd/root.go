// Package cmd holds the root command shared by the msgstack binary.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/cristianoliveira/msgstack/internal/config"
	"github.com/cristianoliveira/msgstack/internal/logging"
	"github.com/cristianoliveira/msgstack/internal/version"
	"github.com/spf13/cobra"
)

var (
	configPathFlag string
	stackingFlag   bool
	debugFlag      bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:               "msgstack",
	Short:             "A terminal message queue that stacks and animates banners.",
	Long:              `A terminal message queue that stacks and animates banners.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute runs the root command with the process arguments. An interrupt
// cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Config file (default: $XDG_CONFIG_HOME/msgstack/config.toml)")
	RootCmd.PersistentFlags().BoolVar(&stackingFlag, "stacking", false, "Show two messages at once (overrides the stacking config value)")
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
}

// setup loads the configuration, applies the global flags on top of it and
// starts file logging.
func setup(cmd *cobra.Command, args []string) error {
	if configPathFlag != "" {
		if err := os.Setenv(config.EnvPrefix+"CONFIG_PATH", configPathFlag); err != nil {
			return err
		}
	}
	config.Load()
	if f := cmd.Flag("stacking"); f != nil && f.Changed {
		config.Set("stacking", strconv.FormatBool(stackingFlag))
	}
	if debugFlag {
		config.Set("debug", "true")
	}
	colors.SetDebug(config.GetBool("debug", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning("file logging disabled:", err.Error())
	}
	logging.Debug("command started", "command", cmd.CommandPath(), "config", config.Path())
	return nil
}
