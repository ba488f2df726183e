package main

import (
	"os"

	"github.com/drivetrainhq/eagleview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
