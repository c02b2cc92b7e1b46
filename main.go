package main

import (
	"os"

	"github.com/minhvu/hoctot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
