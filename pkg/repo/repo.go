/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package repo

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing/fstest"
)

// Repository abstracts read and write access to a repository tree. All paths
// are slash-separated and relative to the repository root. The core pipeline
// depends only on this interface so it can be exercised against an in-memory
// fixture without touching disk.
type Repository interface {
	// Root returns a human-readable location of the repository, used for
	// display and for deriving repository identity (base name).
	Root() string

	// ReadFile reads a file by repository-relative path.
	ReadFile(path string) ([]byte, error)

	// WalkDir walks the tree rooted at root ("" or "." for the repository
	// root), calling fn for every file and directory.
	WalkDir(root string, fn fs.WalkDirFunc) error

	// Exists reports whether path refers to an existing file or directory.
	Exists(path string) bool

	// IsDir reports whether path refers to an existing directory.
	IsDir(path string) bool

	// WriteFile writes data to the repository-relative path, creating
	// parent directories as needed.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}

// OS returns a Repository backed by the directory at root.
func OS(root string) Repository {
	return &osRepository{root: root}
}

type osRepository struct {
	root string
}

func (r *osRepository) Root() string {
	return r.root
}

func (r *osRepository) abs(path string) string {
	if path == "" || path == "." {
		return r.root
	}
	return filepath.Join(r.root, filepath.FromSlash(path))
}

func (r *osRepository) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(r.abs(path))
}

func (r *osRepository) WalkDir(root string, fn fs.WalkDirFunc) error {
	base := r.abs(root)
	return filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(r.root, path)
		if relErr != nil {
			rel = path
		}
		return fn(filepath.ToSlash(rel), d, err)
	})
}

func (r *osRepository) Exists(path string) bool {
	_, err := os.Stat(r.abs(path))
	return err == nil
}

func (r *osRepository) IsDir(path string) bool {
	info, err := os.Stat(r.abs(path))
	return err == nil && info.IsDir()
}

func (r *osRepository) WriteFile(path string, data []byte, perm fs.FileMode) error {
	abs := r.abs(path)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	return os.WriteFile(abs, data, perm)
}

// Mem returns an in-memory Repository seeded with the given files, keyed by
// slash-separated relative path. Intended for tests.
func Mem(name string, files map[string]string) Repository {
	m := &memRepository{
		name:  name,
		files: make(map[string][]byte, len(files)),
	}
	for path, content := range files {
		m.files[path] = []byte(content)
	}
	return m
}

type memRepository struct {
	name  string
	files map[string][]byte
}

func (r *memRepository) Root() string {
	return r.name
}

func (r *memRepository) mapFS() fstest.MapFS {
	mfs := make(fstest.MapFS, len(r.files))
	for path, data := range r.files {
		mfs[path] = &fstest.MapFile{Data: data}
	}
	return mfs
}

func (r *memRepository) ReadFile(path string) ([]byte, error) {
	data, ok := r.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (r *memRepository) WalkDir(root string, fn fs.WalkDirFunc) error {
	if root == "" {
		root = "."
	}
	return fs.WalkDir(r.mapFS(), root, fn)
}

func (r *memRepository) Exists(path string) bool {
	if _, ok := r.files[path]; ok {
		return true
	}
	return r.IsDir(path)
}

func (r *memRepository) IsDir(path string) bool {
	prefix := path + "/"
	for p := range r.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (r *memRepository) WriteFile(path string, data []byte, _ fs.FileMode) error {
	r.files[path] = append([]byte(nil), data...)
	return nil
}

// Files returns the sorted list of file paths currently held by an in-memory
// repository, or nil for other implementations. Used by tests to snapshot
// filesystem state.
func Files(r Repository) []string {
	m, ok := r.(*memRepository)
	if !ok {
		return nil
	}
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
