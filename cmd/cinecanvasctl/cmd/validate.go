package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cinecanvas/internal/cinecanvas"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document.ass.json]",
	Short: "Run export pre-flight checks against an ASS document without writing a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]

		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Printf("Error reading '%s': %v\n", input, err)
			os.Exit(1)
		}

		doc, err := documentFromFile(data, input)
		if err != nil {
			fmt.Printf("Error parsing ASS document '%s': %v\n", input, err)
			os.Exit(1)
		}

		settings := cinecanvas.DefaultSettings("", nil)
		warnings := cinecanvas.AnalyzeWarnings(doc.Events(), settings)

		if warnings == "" {
			fmt.Println("No warnings.")
			return
		}
		fmt.Println(warnings)
	},
}
