package main

import (
	"os"

	"github.com/recollect-cli/recollect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
