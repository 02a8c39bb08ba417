package cache

import (
	"os"
	"path/filepath"
	"testing"

	"lintwell/src/pylint"
)

func TestCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	c := Open(dir)
	c.Validate("pylint 3.0.0", "envkey-1")

	diags := []pylint.Diagnostic{
		{Path: "a.py", Line: 3, Column: 0, Code: "W0611", Symbol: "unused-import", Message: "Unused import os"},
	}
	c.Store("a.py", "hash-a", diags)

	if err := c.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Reopen and verify the entry survived.
	c2 := Open(dir)
	c2.Validate("pylint 3.0.0", "envkey-1")

	got, ok := c2.Lookup("a.py", "hash-a")
	if !ok {
		t.Fatal("expected cache hit after reopen")
	}
	if len(got) != 1 || got[0].Code != "W0611" {
		t.Errorf("unexpected diagnostics: %+v", got)
	}
}

func TestCache_MissOnContentChange(t *testing.T) {
	c := Open(t.TempDir())
	c.Store("a.py", "hash-1", nil)

	if _, ok := c.Lookup("a.py", "hash-2"); ok {
		t.Error("expected miss for a different content hash")
	}
	if _, ok := c.Lookup("b.py", "hash-1"); ok {
		t.Error("expected miss for an unknown path")
	}
}

func TestCache_GuardMismatchDropsEntries(t *testing.T) {
	dir := t.TempDir()

	c := Open(dir)
	c.Validate("pylint 3.0.0", "envkey-1")
	c.Store("a.py", "hash-a", nil)
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	tests := []struct {
		name    string
		version string
		envKey  string
	}{
		{"linter upgraded", "pylint 3.1.0", "envkey-1"},
		{"requirements changed", "pylint 3.0.0", "envkey-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c2 := Open(dir)
			c2.Validate(tt.version, tt.envKey)
			if c2.Len() != 0 {
				t.Errorf("expected empty cache after guard change, got %d entries", c2.Len())
			}
			if _, ok := c2.Lookup("a.py", "hash-a"); ok {
				t.Error("stale entry served after guard change")
			}
		})
	}
}

func TestCache_CorruptManifestDiscarded(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Open(dir)
	if c.Len() != 0 {
		t.Errorf("expected empty cache for corrupt manifest, got %d entries", c.Len())
	}

	// The cache must still be usable.
	c.Store("a.py", "h", nil)
	if err := c.Save(); err != nil {
		t.Fatalf("Save() after corrupt open: %v", err)
	}
}

func TestCache_Forget(t *testing.T) {
	c := Open(t.TempDir())
	c.Store("a.py", "h", nil)
	c.Forget("a.py")

	if _, ok := c.Lookup("a.py", "h"); ok {
		t.Error("expected miss after Forget")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_Prune(t *testing.T) {
	dir := t.TempDir()

	c := Open(dir)
	c.Store("a.py", "h-a", nil)
	c.Store("gone.py", "h-gone", nil)
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	c2 := Open(dir)
	c2.Prune([]string{"a.py"})

	if c2.Len() != 1 {
		t.Errorf("expected 1 entry after Prune, got %d", c2.Len())
	}
	if _, ok := c2.Lookup("gone.py", "h-gone"); ok {
		t.Error("pruned entry still served")
	}
	if _, ok := c2.Lookup("a.py", "h-a"); !ok {
		t.Error("kept entry dropped by Prune")
	}

	// Prune marks the cache dirty, so the trimmed manifest persists.
	if err := c2.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	c3 := Open(dir)
	if c3.Len() != 1 {
		t.Errorf("expected pruned manifest on disk, got %d entries", c3.Len())
	}
}

func TestCache_SaveSkippedWhenClean(t *testing.T) {
	dir := t.TempDir()

	c := Open(dir)
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "manifest.json")); !os.IsNotExist(err) {
		t.Error("Save() on a clean cache should not write a manifest")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	if err := os.WriteFile(path, []byte("import os\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error: %v", err)
	}
	if len(h1) != 64 {
		t.Errorf("expected hex sha256, got %q", h1)
	}

	if err := os.WriteFile(path, []byte("import sys\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error: %v", err)
	}
	if h1 == h2 {
		t.Error("different contents should hash differently")
	}

	if _, err := HashFile(filepath.Join(dir, "missing.py")); err == nil {
		t.Error("expected error for missing file")
	}
}
