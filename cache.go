package speclex

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const cacheFileName = "lexeme_cache.gob"

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

// CacheEntry pairs one tokenized file with the metadata of the content it
// was computed from.
type CacheEntry struct {
	Metadata     fileMetadata
	Result       *FileResult
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache persists tokenization results per file. An entry is served only
// while the file's content hash and modification time still match, so a
// hit means the lexemes are current.
type Cache struct {
	dir     string
	entries map[string]CacheEntry
	mutex   sync.RWMutex
	maxAge  time.Duration
}

// NewCache opens (or creates) a cache rooted at cacheDir.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		dir:     cacheDir,
		entries: make(map[string]CacheEntry),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

// Set stores the result for path under the file's current metadata.
func (c *Cache) Set(path string, result *FileResult) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(path)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	c.entries[path] = CacheEntry{
		Metadata:     metadata,
		Result:       result,
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	return c.save()
}

// Get returns the cached result for path if the file is unchanged.
func (c *Cache) Get(path string) (*FileResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[path]
	if !exists {
		return nil, false
	}

	if c.isEntryStale(path, entry) {
		delete(c.entries, path)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[path] = entry

	return entry.Result, true
}

func (c *Cache) isEntryStale(path string, entry CacheEntry) bool {
	// maxAge zero keeps entries until the file changes
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	currentMetadata, err := getFileMetadata(path)
	return err != nil || currentMetadata != entry.Metadata
}

// SetMaxAge bounds how long entries are served regardless of file changes.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error as this is a manual operation
}

func getFileMetadata(path string) (fileMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}
