package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpmspec-tools/speclex"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch spec files and re-tokenize them on change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		config := loadConfig()
		if err := runWatch(args, config.Extensions); err != nil {
			logger.Fatal("Failed to watch paths", zap.Error(err))
		}
	},
}

func runWatch(paths []string, extensions []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	cache := openLexemeCache()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if !info.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Watching for changes", zap.Strings("paths", paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(event, extensions, cache)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// openLexemeCache opens the result cache under the user cache directory.
// Watching works without one, so failures only disable caching.
func openLexemeCache() *speclex.Cache {
	base, err := os.UserCacheDir()
	if err != nil {
		logger.Warn("Lexeme cache disabled", zap.Error(err))
		return nil
	}
	cache, err := speclex.NewCache(filepath.Join(base, "speclex"))
	if err != nil {
		logger.Warn("Lexeme cache disabled", zap.Error(err))
		return nil
	}
	return cache
}

func handleFileEvent(event fsnotify.Event, extensions []string, cache *speclex.Cache) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !matchesExtension(event.Name, extensions) {
		return
	}

	// wait for a while after the change so bursts of writes count once
	time.Sleep(100 * time.Millisecond)

	if cache != nil {
		if result, ok := cache.Get(event.Name); ok {
			logger.Info("File content unchanged", zap.String("file", event.Name))
			reportLexemes(result)
			return
		}
	}

	result, err := speclex.TokenizeFile(event.Name)
	if err != nil {
		logger.Error("Error tokenizing file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	if cache != nil {
		if err := cache.Set(event.Name, result); err != nil {
			logger.Warn("Failed to update lexeme cache", zap.Error(err))
		}
	}
	reportLexemes(result)
}

func matchesExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func reportLexemes(result *speclex.FileResult) {
	counts := make(map[string]int, 8)
	for _, l := range result.Lexemes {
		counts[l.Name()]++
	}
	logger.Info("Tokenized file",
		zap.String("file", result.Path),
		zap.Int("lexemes", len(result.Lexemes)),
		zap.Any("kinds", counts))
}
