// Package namegen implements collision-free random name generation over a
// naming space.
package namegen

import (
	"fmt"
	"os"
	"path/filepath"
)

// Registry tracks destination paths that are already claimed, either by
// entries on disk or by names reserved earlier in the batch. Keys are full
// composed destination paths, so one registry covers every target directory
// of a batch.
type Registry struct {
	taken map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{taken: make(map[string]struct{})}
}

// Contains reports whether path has been reserved.
func (r *Registry) Contains(path string) bool {
	_, ok := r.taken[path]
	return ok
}

// Reserve claims path for the current batch. It returns false when the path
// was already claimed. Reservations are permanent for the life of the batch.
func (r *Registry) Reserve(path string) bool {
	if _, ok := r.taken[path]; ok {
		return false
	}
	r.taken[path] = struct{}{}
	return true
}

// SeedDir reserves every existing entry of dir, so generated names can never
// collide with files already on disk.
func (r *Registry) SeedDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		r.taken[filepath.Join(dir, entry.Name())] = struct{}{}
	}
	return nil
}

// Len returns the number of reserved paths.
func (r *Registry) Len() int {
	return len(r.taken)
}
