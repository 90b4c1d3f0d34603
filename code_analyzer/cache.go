package code_analyzer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/meysamhadeli/susi/code_analyzer/models"
	provider_models "github.com/meysamhadeli/susi/providers/models"
	"github.com/zeebo/xxh3"
)

const defaultCacheSize = 32

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// CacheManager keeps analysis results of the current process in memory.
type CacheManager struct {
	entries *lru.Cache[string, *provider_models.ProjectData]
	size    int
	stats   *CacheStats
}

// NewCacheManager creates a new cache manager instance.
// If size is not positive, it defaults to 32 entries.
func NewCacheManager(size int) (*CacheManager, error) {
	if size <= 0 {
		size = defaultCacheSize
	}

	entries, err := lru.New[string, *provider_models.ProjectData](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis cache: %w", err)
	}

	return &CacheManager{
		entries: entries,
		size:    size,
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}, nil
}

// GenerateCacheKey derives the key of an analysis request. GitHub sources hash the
// normalized URL; uploads hash the archive content, so a re-zipped identical
// project hits the same entry.
func GenerateCacheKey(request models.AnalysisRequest) (string, error) {
	framework := models.NormalizeFramework(request.Framework)

	switch request.Source {
	case models.SourceGithub:
		url := strings.TrimRight(strings.TrimSpace(request.URL), "/")
		return fmt.Sprintf("github:%s:%x", framework, xxh3.HashString(strings.ToLower(url))), nil

	case models.SourceFile:
		file, err := os.Open(request.FilePath)
		if err != nil {
			return "", fmt.Errorf("failed to open archive: %w", err)
		}
		defer file.Close()

		hasher := xxh3.New()
		if _, err := io.Copy(hasher, file); err != nil {
			return "", fmt.Errorf("failed to hash archive: %w", err)
		}
		return fmt.Sprintf("file:%s:%x", framework, hasher.Sum64()), nil
	}

	return "", fmt.Errorf("unknown source '%s'", request.Source)
}

// Get returns a copy of the cached analysis for key.
func (cm *CacheManager) Get(key string) (*provider_models.ProjectData, bool) {
	data, found := cm.entries.Get(key)
	if !found {
		cm.recordCacheMiss()
		return nil, false
	}

	cm.recordCacheHit()
	return data.Clone(), true
}

// Set stores a copy of data under key.
func (cm *CacheManager) Set(key string, data *provider_models.ProjectData) {
	cm.entries.Add(key, data.Clone())
}

// Clear removes every cached analysis.
func (cm *CacheManager) Clear() {
	cm.entries.Purge()
}

// GetCacheStats returns cache statistics
func (cm *CacheManager) GetCacheStats() map[string]interface{} {
	stats := cm.GetPerformanceStats()
	stats["cache_enabled"] = true
	stats["cached_entries"] = cm.entries.Len()
	stats["capacity"] = cm.size
	return stats
}
