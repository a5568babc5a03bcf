package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"polyline-engine/internal/commands"
)

func main() {
	reg := commands.NewRegistry()
	registerView(reg)
	registerExport(reg)
	registerStats(reg)

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"view"}
	}
	if err := reg.Execute(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "polyline:", err)
		if errors.Is(err, commands.ErrUnknownCommand) {
			reg.Usage(os.Stderr)
		}
		os.Exit(1)
	}
}
