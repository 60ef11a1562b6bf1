package main

import (
	"os"

	"github.com/probelab/interview-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
