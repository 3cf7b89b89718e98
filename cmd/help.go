package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/msgstack/internal/colors"
	"github.com/spf13/cobra"
)

// outputWriter is the writer used by PrintHelp. Can be changed for testing.
var outputWriter io.Writer

// commandOrder is the order commands are listed in the help text.
var commandOrder = []string{
	"demo",
	"watch",
	"replay",
	"history",
	"cleanup",
	"config",
	"help",
	"version",
}

// PrintHelp prints the help text for the root command.
func PrintHelp(cmd *cobra.Command) {
	w := outputWriter
	if w == nil {
		w = cmd.OutOrStdout()
	}
	printHelp(cmd, w)
}

func printHelp(cmd *cobra.Command, w io.Writer) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %s%-18s%s %s", colors.Cyan, found.Use, colors.Reset, found.Short))
	}

	versionStr := cmd.Version
	if versionStr == "" {
		versionStr = "0.0.0"
	}
	header := colors.Blue
	reset := colors.Reset

	fmt.Fprintf(w, `%smsgstack %s%s

%s

%sUSAGE:%s
    msgstack [COMMAND] [OPTIONS]

%sCOMMANDS:%s
%s

%sOPTIONS:%s
    --config PATH   Config file to load
    --stacking      Show two messages at once
    --debug         Enable debug output
    -h, --help      Show help message
`, header, versionStr, reset, cmd.Short, header, reset, header, reset, strings.Join(cmdLines, "\n"), header, reset)
}

// NewHelpCmd creates the help command. With an argument it shows that
// command's own help.
func NewHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show this help message",
		Long:  `Show this help message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				PrintHelp(cmd.Root())
				return nil
			}
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil || target == cmd.Root() {
				PrintHelp(cmd.Root())
				return nil
			}
			return target.Help()
		},
	}
}

func init() {
	RootCmd.SetHelpCommand(NewHelpCmd())
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == cmd.Root() {
			PrintHelp(cmd)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s", strings.TrimSpace(cmd.Long), cmd.UsageString())
	})
}
