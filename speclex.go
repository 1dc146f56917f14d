// Package speclex tokenizes RPM spec files. It exposes the scanner
// library's high-level entry points: tokenizing sources and files, batch
// processing with a bounded worker pool, and the tool configuration.
package speclex

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rpmspec-tools/speclex/internal/driver"
	"github.com/rpmspec-tools/speclex/internal/specfile"
)

// FileResult holds one tokenized file.
type FileResult struct {
	Path    string
	Source  []byte
	Lexemes []driver.Lexeme
}

// TokenizeSource tokenizes a buffer.
func TokenizeSource(source []byte) []driver.Lexeme {
	return driver.Tokenize(source)
}

// TokenizeFile reads and tokenizes one file.
func TokenizeFile(path string) (*FileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &FileResult{Path: path, Source: source, Lexemes: driver.Tokenize(source)}, nil
}

// ProcessFiles discovers spec files under paths and tokenizes them on a
// worker pool bounded by the CPU count. Results come back sorted by path.
// Files that fail to read are logged and skipped; discovery errors abort.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	paths []string,
	extensions []string,
	showProgress bool,
) ([]*FileResult, error) {
	files, err := specfile.Find(paths, extensions)
	if err != nil {
		return nil, err
	}

	resultChan := make(chan *FileResult, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("tokenizing"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sem <- struct{}{}
		go func(path string) {
			defer func() { <-sem }()

			result, err := TokenizeFile(path)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
				}
				errorChan <- err
				resultChan <- nil
			} else {
				resultChan <- result
				errorChan <- nil
			}
			if bar != nil {
				bar.Add(1)
			}
		}(file.Path)
	}

	var results []*FileResult
	for range files {
		if err := <-errorChan; err != nil {
			continue
		}
		if result := <-resultChan; result != nil {
			results = append(results, result)
		}
	}

	if bar != nil {
		fmt.Println()
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

// Config is the tool configuration read from .speclex.yaml.
type Config struct {
	Format     string   `yaml:"format"`
	Extensions []string `yaml:"extensions"`
	Color      string   `yaml:"color"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Format:     "text",
		Extensions: []string{".spec"},
		Color:      "auto",
	}
}

// ParseConfigFile reads a configuration file. Fields the file leaves
// empty keep their defaults.
func ParseConfigFile(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if config.Format == "" {
		config.Format = "text"
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".spec"}
	}
	if config.Color == "" {
		config.Color = "auto"
	}
	return config, nil
}
