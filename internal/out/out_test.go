package out

// Notes:
// - Recreate must drop files left over from a previous build
// - CatDir concatenates in file name order and skips empty directories

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecreateClearsPreviousBuild(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "out")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(root, "stale.html")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Recreate(root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("expected the stale file to be gone, got %v", err)
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	t.Parallel()

	d, err := Recreate(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteFile("2024/example/index.html", []byte("page")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(d.Path("2024/example/index.html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "page" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestCopyDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "fonts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "fonts", "a.woff2"), []byte("font"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Recreate(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.CopyDir("assets", src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rel := range []string{"assets/style.css", "assets/fonts/a.woff2"} {
		if _, err := os.Stat(d.Path(rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}

	// A missing source directory is a no-op.
	if err := d.CopyDir("nothing", filepath.Join(src, "missing")); err != nil {
		t.Errorf("unexpected error for missing source: %v", err)
	}
}

func TestCatDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "b.css"), []byte("b{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.css"), []byte("a{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Recreate(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.CatDir("bundle.css", src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(d.Path("bundle.css"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "a{}b{}" {
		t.Errorf("expected name-ordered concatenation, got %q", data)
	}
}

func TestCatDirEmpty(t *testing.T) {
	t.Parallel()

	d, err := Recreate(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.CatDir("bundle.css", t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(d.Path("bundle.css")); !os.IsNotExist(err) {
		t.Errorf("expected no bundle for an empty directory, got %v", err)
	}
	if err := d.CatDir("bundle.css", filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("unexpected error for missing directory: %v", err)
	}
}
