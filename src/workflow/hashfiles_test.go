package workflow

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestHashFiles_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "pylint==3.0.0\n")
	writeFile(t, root, "sub/requirements-dev.txt", "pytest==8.0.0\n")

	h1, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}
	if len(h1) != 64 {
		t.Errorf("expected hex sha256, got %q", h1)
	}

	h2, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}
	if h1 != h2 {
		t.Error("hash must be deterministic across runs")
	}
}

func TestHashFiles_ChangesWithContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "pylint==3.0.0\n")

	before, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}

	writeFile(t, root, "requirements.txt", "pylint==3.1.0\n")
	after, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}

	if before == after {
		t.Error("hash must change when a requirement file changes")
	}
}

func TestHashFiles_MatchesAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "a\n")
	writeFile(t, root, "deep/nested/tree/requirements.txt", "b\n")
	writeFile(t, root, "setup.py", "c\n")

	withDeep, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}

	if err := os.Remove(filepath.Join(root, "deep/nested/tree/requirements.txt")); err != nil {
		t.Fatal(err)
	}
	withoutDeep, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}

	if withDeep == withoutDeep {
		t.Error("nested requirement files must contribute to the hash")
	}
}

func TestHashFiles_NoMatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "pass\n")

	h, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}
	if h != "" {
		t.Errorf("expected empty key for no matches, got %q", h)
	}
}

func TestHashFiles_NoPatterns(t *testing.T) {
	if _, err := HashFiles(t.TempDir()); err == nil {
		t.Error("expected error when no patterns are given")
	}
}

func TestHashFiles_PlainPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "a\n")
	writeFile(t, root, "sub/requirements.txt", "b\n")

	topOnly, err := HashFiles(root, "requirements.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}

	both, err := HashFiles(root, "**/requirements*.txt")
	if err != nil {
		t.Fatalf("HashFiles() error: %v", err)
	}

	if topOnly == both {
		t.Error("plain pattern should not match nested files")
	}
}
