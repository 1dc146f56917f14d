package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpmspec-tools/speclex"
)

var (
	scanJSON       bool
	scanOutPath    string
	scanExtensions string
	scanNoProgress bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Tokenize spec files and print their lexeme streams",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config := loadConfig()
		if scanExtensions != "" {
			config.Extensions = splitList(scanExtensions)
		}
		applyColorMode(config.Color)

		asJSON := scanJSON || config.Format == "json"
		showProgress := !scanNoProgress && !asJSON

		results, err := speclex.ProcessFiles(ctx, logger, args, config.Extensions, showProgress)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		if asJSON {
			if err := printJSON(results, scanOutPath); err != nil {
				logger.Error("Error writing JSON output", zap.Error(err))
				os.Exit(1)
			}
			return
		}
		printResults(results)
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output lexemes in JSON format")
	scanCmd.Flags().StringVarP(&scanOutPath, "output", "o", "", "Output path (when using JSON)")
	scanCmd.Flags().StringVar(&scanExtensions, "extensions", "", "Comma-separated list of file extensions to scan")
	scanCmd.Flags().BoolVar(&scanNoProgress, "no-progress", false, "Disable the progress bar")
}

// loadConfig reads the configured configuration file. A missing default
// file is fine; an explicitly named one must exist.
func loadConfig() speclex.Config {
	path := cfgFile
	if path == "" {
		path = defaultConfigFile
		if _, err := os.Stat(path); err != nil {
			return speclex.DefaultConfig()
		}
	}

	config, err := speclex.ParseConfigFile(path)
	if err != nil {
		logger.Fatal("Failed to read configuration file", zap.String("file", path), zap.Error(err))
	}
	return config
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
