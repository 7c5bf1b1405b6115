// Package main provides the silk CLI: it builds atomic CSS and a class
// manifest from YAML style sheets and design tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
