package main

import (
	"os"

	"github.com/abhisek/formwiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
