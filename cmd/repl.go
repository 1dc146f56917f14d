package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/rpmspec-tools/speclex/internal/driver"
	"github.com/rpmspec-tools/speclex/internal/trie"
	"github.com/rpmspec-tools/speclex/scanner"
)

const historyFile = ".speclex_history"

var replCommands = []string{":help", ":keywords", ":quit", ":state"}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Tokenize lines interactively",
	Run: func(cmd *cobra.Command, args []string) {
		runREPL()
	},
}

func runREPL() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(newCompleter())

	historyPath := filepath.Join(os.Getenv("HOME"), historyFile)
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("speclex repl - :help for commands, :quit to leave")

	// the serialized scanner state left by the most recent line
	state := scanner.New().Serialize()

	for {
		input, err := line.Prompt("speclex> ")
		if err != nil {
			// Ctrl-C or Ctrl-D
			fmt.Println()
			return
		}
		if input != "" {
			line.AppendHistory(input)
		}

		switch {
		case input == "":
		case input == ":quit" || input == ":q":
			return
		case input == ":help":
			printREPLHelp()
		case input == ":state":
			fmt.Println(hex.EncodeToString(state))
		case strings.HasPrefix(input, ":keywords"):
			printKeywordClass(strings.TrimSpace(strings.TrimPrefix(input, ":keywords")))
		case strings.HasPrefix(input, ":"):
			fmt.Printf("unknown command %s, try :help\n", input)
		default:
			source := []byte(input + "\n")
			d := driver.New(source)
			for _, l := range d.Run() {
				fmt.Println(formatLexeme(source, l))
			}
			state = d.State()
		}
	}
}

// newCompleter completes colon commands and %keyword prefixes. Lines with
// a space are left alone.
func newCompleter() liner.Completer {
	keywords := trie.New()
	for _, table := range scanner.TableNames() {
		names, _ := scanner.Keywords(table)
		for _, name := range names {
			keywords.Insert(name)
		}
	}

	return func(line string) []string {
		if strings.ContainsRune(line, ' ') {
			return nil
		}
		switch {
		case strings.HasPrefix(line, ":"):
			var out []string
			for _, cmd := range replCommands {
				if strings.HasPrefix(cmd, line) {
					out = append(out, cmd)
				}
			}
			return out
		case strings.HasPrefix(line, "%"):
			var out []string
			for _, word := range keywords.WithPrefix(line[1:]) {
				out = append(out, "%"+word)
			}
			return out
		}
		return nil
	}
}

func printREPLHelp() {
	fmt.Println(":quit           leave the repl")
	fmt.Println(":state          print the scanner state left by the last line")
	fmt.Println(":keywords NAME  show which keyword tables contain NAME")
}

func printKeywordClass(name string) {
	if name == "" {
		fmt.Println("usage: :keywords NAME")
		return
	}
	tables := scanner.KeywordClass(strings.TrimPrefix(name, "%"))
	if len(tables) == 0 {
		fmt.Printf("%s is not a keyword\n", name)
		return
	}
	fmt.Printf("%s: %s\n", name, strings.Join(tables, ", "))
}
