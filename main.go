package main

import (
	"fmt"
	"os"

	"github.com/temirov/partscan/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the partscan command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
