package main

import (
	"os"

	"github.com/opconsole/opconsole/cmd/opconsole/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
