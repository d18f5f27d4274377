package main

import (
	"os"

	"github.com/ziptext/ziptext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
