// Package cache implements the incremental lint result cache. Files whose
// content is unchanged since the last run are skipped and their stored
// diagnostics replayed, the same way the CI dependency cache avoids
// reinstalling unchanged requirements.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"lintwell/src/pylint"
)

// manifestVersion invalidates all caches when the on-disk format changes.
const manifestVersion = 1

// DefaultDirName is the cache directory created under the lint root.
const DefaultDirName = ".lintwell"

// Entry stores the lint outcome for one file at one content hash.
type Entry struct {
	ContentHash string              `json:"content_hash"`
	Diagnostics []pylint.Diagnostic `json:"diagnostics"`
}

// manifest is the serialized cache state.
type manifest struct {
	Version int `json:"version"`

	// LinterVersion and EnvKey guard the whole cache: any change to the
	// pylint version or the requirements hash discards every entry.
	LinterVersion string `json:"linter_version"`
	EnvKey        string `json:"env_key"`

	Files map[string]Entry `json:"files"`
}

// Cache is the loaded, mutable cache for one lint root.
type Cache struct {
	dir      string
	manifest manifest
	dirty    bool
}

// Open loads the cache under dir, creating an empty one when missing or
// unreadable. A corrupt manifest is discarded, never an error: the cache is
// strictly an optimization.
func Open(dir string) *Cache {
	c := &Cache{
		dir: dir,
		manifest: manifest{
			Version: manifestVersion,
			Files:   make(map[string]Entry),
		},
	}

	data, err := os.ReadFile(c.manifestPath())
	if err != nil {
		return c
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil || m.Version != manifestVersion {
		return c
	}
	if m.Files == nil {
		m.Files = make(map[string]Entry)
	}
	c.manifest = m
	return c
}

// Validate checks the cache guards. On mismatch every entry is dropped and
// the guards are reset to the given values.
func (c *Cache) Validate(linterVersion, envKey string) {
	if c.manifest.LinterVersion == linterVersion && c.manifest.EnvKey == envKey {
		return
	}
	c.manifest.LinterVersion = linterVersion
	c.manifest.EnvKey = envKey
	c.manifest.Files = make(map[string]Entry)
	c.dirty = true
}

// Lookup returns the stored diagnostics for path when the content hash
// still matches.
func (c *Cache) Lookup(path, contentHash string) ([]pylint.Diagnostic, bool) {
	entry, ok := c.manifest.Files[path]
	if !ok || entry.ContentHash != contentHash {
		return nil, false
	}
	return entry.Diagnostics, true
}

// Store records the diagnostics for path at the given content hash.
func (c *Cache) Store(path, contentHash string, diags []pylint.Diagnostic) {
	c.manifest.Files[path] = Entry{
		ContentHash: contentHash,
		Diagnostics: diags,
	}
	c.dirty = true
}

// Forget removes a file from the cache (e.g. when it was deleted).
func (c *Cache) Forget(path string) {
	if _, ok := c.manifest.Files[path]; ok {
		delete(c.manifest.Files, path)
		c.dirty = true
	}
}

// Prune forgets every cached file that is not in keep, so entries for
// deleted or newly excluded files do not accumulate in the manifest.
func (c *Cache) Prune(keep []string) {
	keepSet := make(map[string]bool, len(keep))
	for _, f := range keep {
		keepSet[f] = true
	}
	for path := range c.manifest.Files {
		if !keepSet[path] {
			c.Forget(path)
		}
	}
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return len(c.manifest.Files)
}

// Save persists the manifest when it changed. Writes go through a temp file
// and rename so a crashed run never leaves a truncated manifest.
func (c *Cache) Save() error {
	if !c.dirty {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(c.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache manifest: %w", err)
	}

	tmp := c.manifestPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache manifest: %w", err)
	}
	if err := os.Rename(tmp, c.manifestPath()); err != nil {
		return fmt.Errorf("failed to replace cache manifest: %w", err)
	}

	c.dirty = false
	return nil
}

func (c *Cache) manifestPath() string {
	return filepath.Join(c.dir, "manifest.json")
}

// HashFile returns the hex sha256 of a file's contents.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
