package main

import (
	"fmt"
	"os"

	"filechooser/internal/cmd"
	"filechooser/internal/errors"
)

var (
	version = "dev"
)

func main() {
	if err := cmd.Execute(version); err != nil {
		if errors.Is(err, cmd.ErrCancelled) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
