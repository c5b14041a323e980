package main

import (
	"os"

	"github.com/nmachari/weaver/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
