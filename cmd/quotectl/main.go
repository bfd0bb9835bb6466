// Command quotectl is the operator tool for the quote bot: it seeds the
// catalog, runs a console conversation and prices one-off jobs.
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
