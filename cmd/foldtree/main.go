package main

import (
	"fmt"
	"os"

	"github.com/bethropolis/foldtree/internal/app"
)

func main() {
	rootCmd := app.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
