package main

import (
	"os"

	"github.com/harveybc/fxsim/cmd/fxsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
