package utils

import "sync"

var gdalMu sync.Mutex

// ExecuteWithGDALMutex serializes godal dataset open/create calls when
// scenes are processed on multiple workers.
func ExecuteWithGDALMutex(fn func()) {
	gdalMu.Lock()
	defer gdalMu.Unlock()
	fn()
}
