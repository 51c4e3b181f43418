// Command raintank simulates a rainwater irrigation tank over a daily weather log.
package main

import (
	"fmt"
	"os"

	"github.com/eunmann/raintank/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
