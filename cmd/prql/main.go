// Command prql compiles relational query documents into SQL.
package main

import (
	"os"

	"github.com/leapstack-labs/prql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
