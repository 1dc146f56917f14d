// Package specfile discovers candidate spec files under a set of paths.
package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes a discovered file.
type FileInfo struct {
	Path string
	Size int64
}

// Find walks each path and returns the files whose extension matches,
// sorted by path. Explicitly named files are returned regardless of
// extension; inside directories only matching files count.
func Find(paths []string, extensions []string) ([]FileInfo, error) {
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = true
	}

	var files []FileInfo
	seen := make(map[string]bool)

	add := func(path string, size int64) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, FileInfo{Path: path, Size: size})
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root, info.Size())
			continue
		}

		err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() || !wanted[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			add(path, fi.Size())
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
