package main

import (
	"os"

	"github.com/alphadata/cvmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
