// Package main provides the entry point for the ymjkit CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/ymjkit/cmd/ymjkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
