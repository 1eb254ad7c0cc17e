// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hygiene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/venue-engine/pkg/types"
)

// Cache is the persistent lookup cache keyed on normalized name and
// postcode. A nil entry value is an explicit negative marker: the lookup
// was attempted and found nothing, so later runs skip the network call.
//
// The cache is owned by a single pipeline run; there is no locking.
type Cache struct {
	path    string
	entries map[string]*types.HygieneRecord
	dirty   bool
}

// CacheKey builds the canonical cache key from a venue name and postcode.
// Both parts are lowercased, trimmed, and have runs of whitespace
// collapsed, so trivial formatting differences share one entry.
func CacheKey(name, postcode string) string {
	return canonical(name) + "|" + canonical(postcode)
}

func canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// LoadCache reads the cache file at path. A missing file yields an empty
// cache; a corrupt file is an error so a typo'd path does not silently
// discard accumulated lookups.
func LoadCache(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]*types.HygieneRecord)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing cache file %s: %w", path, err)
	}
	return c, nil
}

// Get returns the cached record for key and whether any entry (including
// a negative marker) exists.
func (c *Cache) Get(key string) (*types.HygieneRecord, bool) {
	rec, ok := c.entries[key]
	return rec, ok
}

// Put stores a record (or a nil negative marker) under key.
func (c *Cache) Put(key string, rec *types.HygieneRecord) {
	c.entries[key] = rec
	c.dirty = true
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Negatives returns how many entries are negative markers.
func (c *Cache) Negatives() int {
	n := 0
	for _, rec := range c.entries {
		if rec == nil {
			n++
		}
	}
	return n
}

// Flush writes the cache to disk via a temporary file and rename, so a
// reader never observes a partial file. A clean cache is a no-op.
func (c *Cache) Flush() error {
	if !c.dirty {
		return nil
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	c.dirty = false
	return nil
}
