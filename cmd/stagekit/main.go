// Command stagekit runs a headless demo of the behavior runtime and lists the
// subsystems it knows about.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
