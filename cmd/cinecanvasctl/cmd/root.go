package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cinecanvasctl",
	Short: "Convert and inspect CineCanvas/ASS subtitle files",
	Long: `cinecanvasctl is a command line tool for converting between CineCanvas
XML (the DCP subtitle format) and an ASS-shaped subtitle document.

It provides subcommands for each conversion direction plus a validator
that runs the export pre-flight checks without writing a file.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
}
