// Package main is the entry point for the filetalk CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "filetalk: %v\n", err)
		os.Exit(1)
	}
}
