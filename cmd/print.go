package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/rpmspec-tools/speclex"
	"github.com/rpmspec-tools/speclex/internal/driver"
)

var (
	fileStyle = color.New(color.FgCyan, color.Bold)
	lineStyle = color.New(color.FgBlue, color.Bold)
	kindStyle = color.New(color.FgYellow, color.Bold)
	rawStyle  = color.New(color.FgHiBlack)
)

// applyColorMode maps the configuration's color key onto the global
// color switch. "auto" leaves terminal detection alone.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

func printResults(results []*speclex.FileResult) {
	for _, result := range results {
		fmt.Println(fileStyle.Sprint(result.Path))
		for _, l := range result.Lexemes {
			fmt.Println(formatLexeme(result.Source, l))
		}
		fmt.Println()
	}
}

func formatLexeme(source []byte, l driver.Lexeme) string {
	style := kindStyle
	if l.Raw {
		style = rawStyle
	}
	return fmt.Sprintf("%s %s %q",
		lineStyle.Sprintf("%4d |", l.Line),
		style.Sprintf("%-18s", l.Name()),
		source[l.Start:l.End])
}

// lexemeRecord is the JSON shape of one lexeme.
type lexemeRecord struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Line  int    `json:"line"`
	Text  string `json:"text"`
}

func printJSON(results []*speclex.FileResult, outPath string) error {
	lexemesByFile := make(map[string][]lexemeRecord, len(results))
	for _, result := range results {
		records := make([]lexemeRecord, 0, len(result.Lexemes))
		for _, l := range result.Lexemes {
			records = append(records, lexemeRecord{
				Kind:  l.Name(),
				Start: l.Start,
				End:   l.End,
				Line:  l.Line,
				Text:  string(result.Source[l.Start:l.End]),
			})
		}
		lexemesByFile[result.Path] = records
	}

	d, err := json.Marshal(lexemesByFile)
	if err != nil {
		return fmt.Errorf("failed to marshal lexemes: %w", err)
	}

	if outPath == "" {
		fmt.Println(string(d))
		return nil
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
