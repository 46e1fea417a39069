// Package main provides the ngaudit command.
package main

import (
	"os"

	"github.com/leapstack-labs/ngaudit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
