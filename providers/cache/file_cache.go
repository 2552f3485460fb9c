// Package cache implements the on-disk response cache. One file per
// request signature; entries live until the directory is deleted.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
)

// Outcome reports which path GetOrFetch took. Callers only need the
// returned bytes; the outcome exists for logging and tests.
type Outcome int

const (
	OutcomeHit Outcome = iota
	OutcomeFetched
	OutcomeFetchedStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeFetched:
		return "fetched"
	case OutcomeFetchedStoreFailed:
		return "fetched, store failed"
	default:
		return "unknown"
	}
}

// FetchFunc produces the raw response bytes on a cache miss.
type FetchFunc func() ([]byte, error)

// FileCache stores raw API responses under a directory, namespaced so
// mock and live entries never shadow each other.
type FileCache struct {
	dir       string
	namespace string
}

func NewFileCache(dir, namespace string) *FileCache {
	return &FileCache{
		dir:       dir,
		namespace: namespace,
	}
}

// GetOrFetch returns the cached bytes for (endpoint, params) if a cache
// file exists, otherwise invokes fetch and persists the result. A failed
// write is advisory: the fetched bytes are still returned.
func (c *FileCache) GetOrFetch(endpoint string, params url.Values, fetch FetchFunc) ([]byte, Outcome, error) {
	key := c.Signature(endpoint, params)
	path := filepath.Join(c.dir, key)

	if data, err := os.ReadFile(path); err == nil {
		slog.Debug("cache hit", "key", key)
		return data, OutcomeHit, nil
	}
	slog.Debug("cache miss", "key", key)

	data, err := fetch()
	if err != nil {
		return nil, OutcomeFetched, err
	}

	if err := c.store(path, data); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
		return data, OutcomeFetchedStoreFailed, nil
	}
	return data, OutcomeFetched, nil
}

// Signature derives a stable cache file name from the endpoint identifier
// and normalized query parameters. Credentials must not be part of params.
func (c *FileCache) Signature(endpoint string, params url.Values) string {
	canonical := params.Encode() // sorted by key
	sum := sha256.Sum256([]byte(endpoint + "\n" + canonical))
	return fmt.Sprintf("%s-%s-%s.json", c.namespace, endpoint, hex.EncodeToString(sum[:])[:16])
}

func (c *FileCache) store(path string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	// Write-then-rename so a concurrent reader never sees a torn file.
	tmp, err := os.CreateTemp(c.dir, ".cache-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
