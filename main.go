// Package main is the entry point for the tally CLI.
package main

import "tally.dev/pkg/tally/cmd"

func main() {
	cmd.Execute()
}
