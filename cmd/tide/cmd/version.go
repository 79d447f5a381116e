package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Print the Tide CLI version",
		Usage: "tide version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	fmt.Printf("tide %s (built %s)\n", Version, BuildTime)
	return nil
}
