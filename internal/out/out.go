// Package out stages the generated site on disk: it owns the output
// directory lifecycle and the primitive write/copy/concatenate operations
// the builder composes.
package out

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const dirMode = 0o755

// Dir is a staged output directory. The zero value is unusable; obtain one
// through Recreate.
type Dir struct {
	root string
}

// Recreate removes any previous output at root and creates it fresh, so a
// build never inherits stale files.
func Recreate(root string) (*Dir, error) {
	if err := os.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("clearing output directory: %w", err)
	}
	if err := os.MkdirAll(root, dirMode); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Dir{root: root}, nil
}

// Path resolves a site-relative path inside the output directory.
func (d *Dir) Path(rel string) string {
	return filepath.Join(d.root, filepath.FromSlash(rel))
}

// WriteFile writes data at the site-relative path, creating parents.
func (d *Dir) WriteFile(rel string, data []byte) error {
	target := d.Path(rel)
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// CopyFile copies a single file from src to the site-relative path.
func (d *Dir) CopyFile(rel, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	return d.WriteFile(rel, data)
}

// CopyDir copies a directory tree from src under the site-relative path.
// A missing source directory is not an error; the site simply has no such
// assets.
func (d *Dir) CopyDir(rel, src string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		sub, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		return d.CopyFile(filepath.ToSlash(filepath.Join(rel, sub)), path)
	})
}

// CatDir concatenates the files directly inside src, in file name order,
// into the site-relative target file. An empty or missing source directory
// produces no file at all.
func (d *Dir) CatDir(rel, src string) error {
	entries, err := os.ReadDir(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	target := d.Path(rel)
	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer dst.Close()

	for _, name := range names {
		f, err := os.Open(filepath.Join(src, name))
		if err != nil {
			return fmt.Errorf("opening %s: %w", name, err)
		}
		_, err = io.Copy(dst, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("concatenating %s: %w", name, err)
		}
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	return nil
}
