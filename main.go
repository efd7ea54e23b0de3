// Package main is the entry point for the strix frame capture tool.
package main

import (
	"fmt"
	"os"

	"github.com/strixcap/strix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
