package main

import (
	"fmt"
	"os"

	"github.com/go-tide/tide/cmd/tide/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tide: %v\n", err)
		os.Exit(1)
	}
}
