package main

import (
	"os"

	"github.com/lalg-lang/lalg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
