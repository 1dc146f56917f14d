package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpmspec-tools/speclex/scanner"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [table...]",
	Short: "Print the keyword tables the scanner treats specially",
	Long: `Prints the reserved, section and files keyword tables.
Example) speclex keywords section`,
	Run: func(cmd *cobra.Command, args []string) {
		tables := scanner.TableNames()
		if len(args) > 0 {
			tables = args
		}

		for _, table := range tables {
			words, ok := scanner.Keywords(table)
			if !ok {
				logger.Fatal("Unknown keyword table", zap.String("table", table))
			}
			fmt.Printf("%s (%d entries)\n", kindStyle.Sprint(table), len(words))
			for _, w := range words {
				fmt.Printf("  %%%s\n", w)
			}
			fmt.Println()
		}
	},
}
