package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aang",
	Short: "Compile a grammar into a parser-ready artifact",
	Long: `aang provides three features:
- Compiles a grammar defined through the program API into a compiled artifact.
- Prints a compiled artifact in human-readable form.
- Runs the parse-forest flattener over a hand-built forest, for demonstration.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
