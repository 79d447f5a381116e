// Package cmd implements the Tide CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (init, version).
package cmd

import (
	"fmt"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "tide",
	Short: "Tide - a retained-mode scene engine for Go",
	Long: `Tide is a scene engine for real-time Go applications: a component
tree with per-tick update/render traversals, stack-based navigation,
and software rasterization.

Use "tide <command> --help" for more information about a command.`,
	Usage: "tide <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		printRootHelp()
		return nil
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		printRootHelp()
		return fmt.Errorf("unknown command %q", name)
	}

	rest := args[1:]
	if len(rest) > 0 && (rest[0] == "--help" || rest[0] == "-h") {
		printCommandHelp(cmd)
		return nil
	}

	return cmd.Run(rest)
}

func printRootHelp() {
	fmt.Println(rootCmd.Long)
	fmt.Println()
	fmt.Printf("Usage: %s\n\n", rootCmd.Usage)
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-10s %s\n", cmd.Name, cmd.Short)
	}
}

func printCommandHelp(cmd *Command) {
	long := strings.TrimSpace(cmd.Long)
	if long == "" {
		long = cmd.Short
	}
	fmt.Println(long)
	fmt.Println()
	fmt.Printf("Usage: %s\n", cmd.Usage)
}
