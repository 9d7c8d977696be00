package cache

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type CacheEntry[T any] struct {
	Data      T         `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	Checksum  string    `json:"checksum"`
}

type CacheService[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T) error
	GenerateKey(params ...interface{}) string
}

// FileCache memoizes computed values as JSON files under baseDir.
// The batch run uses it to skip re-deriving statistics for scenes
// whose input file has not changed.
type FileCache[T any] struct {
	cacheDir string
}

func NewFileCache[T any](baseDir, subDir string) *FileCache[T] {
	return &FileCache[T]{cacheDir: filepath.Join(baseDir, subDir)}
}

func (fc *FileCache[T]) GenerateKey(params ...interface{}) string {
	var keyData string
	for _, param := range params {
		keyData += fmt.Sprintf("%v_", param)
	}
	h := sha1.New()
	h.Write([]byte(keyData))
	return hex.EncodeToString(h.Sum(nil))
}

func (fc *FileCache[T]) Get(key string) (T, bool) {
	var zero T
	cacheFile := filepath.Join(fc.cacheDir, key+".json")

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return zero, false
	}

	var entry CacheEntry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		return zero, false
	}

	if entry.Checksum != fc.calculateChecksum(entry.Data) {
		return zero, false
	}

	return entry.Data, true
}

func (fc *FileCache[T]) Set(key string, data T) error {
	if err := os.MkdirAll(fc.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %v", err)
	}

	entry := CacheEntry[T]{
		Data:      data,
		CreatedAt: time.Now(),
		Checksum:  fc.calculateChecksum(data),
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %v", err)
	}

	cacheFile := filepath.Join(fc.cacheDir, key+".json")
	if err := os.WriteFile(cacheFile, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %v", err)
	}
	return nil
}

func (fc *FileCache[T]) calculateChecksum(data T) string {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	h := md5.New()
	h.Write(jsonData)
	return hex.EncodeToString(h.Sum(nil))
}
