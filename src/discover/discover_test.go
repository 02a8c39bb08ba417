package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTree creates a file tree from relative paths, making parent dirs.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("pass\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFiles_SortedRelativePaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"z_module.py",
		"pkg/b.py",
		"pkg/a.py",
		"pkg/sub/deep.py",
		"README.md",
		"scripts/run.sh",
	)

	files, err := Files(root, Options{})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}

	expected := []string{
		filepath.Join("pkg", "a.py"),
		filepath.Join("pkg", "b.py"),
		filepath.Join("pkg", "sub", "deep.py"),
		"z_module.py",
	}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("Files() = %v, want %v", files, expected)
	}
}

func TestFiles_ExcludesSkipped(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"app.py",
		".git/hooks/hook.py",
		".venv/lib/site.py",
		"__pycache__/app.cpython-311.py",
		"vendor/node_modules/tool/setup.py",
	)

	files, err := Files(root, Options{})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}

	expected := []string{"app.py"}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("Files() = %v, want %v", files, expected)
	}
}

func TestFiles_HiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"app.py",
		".ci/check.py",
	)

	files, err := Files(root, Options{})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if len(files) != 1 || files[0] != "app.py" {
		t.Errorf("hidden directory not skipped: %v", files)
	}

	files, err = Files(root, Options{FollowHidden: true})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	expected := []string{filepath.Join(".ci", "check.py"), "app.py"}
	if !reflect.DeepEqual(files, expected) {
		t.Errorf("Files(FollowHidden) = %v, want %v", files, expected)
	}
}

func TestFiles_CustomSuffix(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.py", "b.pyi", "c.txt")

	files, err := Files(root, Options{Suffix: ".pyi"})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if len(files) != 1 || files[0] != "b.pyi" {
		t.Errorf("Files(.pyi) = %v", files)
	}
}

func TestFiles_EmptyTree(t *testing.T) {
	files, err := Files(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestFiles_MissingRoot(t *testing.T) {
	if _, err := Files(filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestFiles_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.py")
	if _, err := Files(filepath.Join(root, "a.py"), Options{}); err == nil {
		t.Error("expected error when root is a file")
	}
}
