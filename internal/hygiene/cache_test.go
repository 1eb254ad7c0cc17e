// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hygiene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/venue-engine/pkg/types"
)

func TestLoadCacheMissingFile(t *testing.T) {
	c, err := LoadCache(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestLoadCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCache(path); err == nil {
		t.Fatal("expected error for corrupt cache")
	}
}

func TestCacheFlushRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Put(CacheKey("Test Curry House", "E1 6PU"), &types.HygieneRecord{
		FHRSID:      123456,
		RatingValue: "5",
		Authority:   "Tower Hamlets",
	})
	c.Put(CacheKey("Nowhere Grill", "N1 1AA"), nil)

	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	reloaded, err := LoadCache(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reloaded.Len())
	}
	if reloaded.Negatives() != 1 {
		t.Errorf("Negatives = %d, want 1", reloaded.Negatives())
	}

	rec, ok := reloaded.Get(CacheKey("Test Curry House", "E1 6PU"))
	if !ok || rec == nil || rec.RatingValue != "5" {
		t.Errorf("record = %+v, ok = %v", rec, ok)
	}

	// The negative marker survives as an explicit entry.
	rec, ok = reloaded.Get(CacheKey("Nowhere Grill", "N1 1AA"))
	if !ok || rec != nil {
		t.Errorf("negative entry = %+v, ok = %v", rec, ok)
	}
}

func TestCacheFlushCleanIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clean flush should not create a file")
	}
}

func TestCacheFlushLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	c, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("a|b", nil)
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "cache.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want only cache.json", names)
	}
}
