// Package main provides the entry point for the canned CLI.
package main

import (
	"fmt"
	"os"

	"github.com/canned/canned/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
