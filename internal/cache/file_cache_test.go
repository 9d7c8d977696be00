package cache

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TestFileCacheRoundTrip stores and reloads an entry.
func TestFileCacheRoundTrip(t *testing.T) {
	fc := NewFileCache[sample](t.TempDir(), "stats")
	key := fc.GenerateKey("scene.tif", 123, 456)

	if _, ok := fc.Get(key); ok {
		t.Fatalf("expected miss before Set")
	}

	in := sample{Name: "hot_may_2023", Value: 27.5}
	if err := fc.Set(key, in); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out, ok := fc.Get(key)
	if !ok {
		t.Fatalf("expected hit after Set")
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

// TestFileCacheChecksumMismatch rejects tampered entries.
func TestFileCacheChecksumMismatch(t *testing.T) {
	base := t.TempDir()
	fc := NewFileCache[sample](base, "stats")
	key := fc.GenerateKey("scene.tif")

	if err := fc.Set(key, sample{Name: "a", Value: 1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cacheFile := filepath.Join(base, "stats", key+".json")
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		t.Fatalf("failed to read cache file: %v", err)
	}
	tampered := []byte(string(data))
	copy(tampered, []byte(`{"data":{"name":"b"`))
	if err := os.WriteFile(cacheFile, tampered, 0644); err != nil {
		t.Fatalf("failed to tamper cache file: %v", err)
	}

	if _, ok := fc.Get(key); ok {
		t.Errorf("expected miss for tampered entry")
	}
}

// TestGenerateKey is deterministic and parameter-sensitive.
func TestGenerateKey(t *testing.T) {
	fc := NewFileCache[sample](t.TempDir(), "stats")
	a := fc.GenerateKey("x", 1)
	b := fc.GenerateKey("x", 1)
	c := fc.GenerateKey("x", 2)
	if a != b {
		t.Errorf("expected deterministic keys, got %q and %q", a, b)
	}
	if a == c {
		t.Errorf("expected distinct keys for distinct parameters")
	}
}
