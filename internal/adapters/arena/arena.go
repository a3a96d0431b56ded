// Package arena holds persistent copies of checked file buffers.
package arena

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.BufferArena = (*Arena)(nil)

// Arena implements ports.BufferArena. Entries are append-only and live for
// the remainder of the process, so every handle it hands out stays valid
// after the originating check task is gone.
//
// Many errors typically point into the same file, so entries are dedupe'd
// by (name, content digest): persisting the same buffer twice returns the
// first clone instead of a second copy.
type Arena struct {
	mu      sync.Mutex
	entries map[key]*domain.InputFile
}

type key struct {
	name string
	hash uint64
}

// New creates an empty Arena.
func New() *Arena {
	return &Arena{entries: make(map[key]*domain.InputFile)}
}

// Persist returns a stable InputFile holding a copy of contents.
func (a *Arena) Persist(name string, contents []byte) *domain.InputFile {
	k := key{name: name, hash: xxhash.Sum64(contents)}

	a.mu.Lock()
	defer a.mu.Unlock()

	if f, ok := a.entries[k]; ok {
		return f
	}

	clone := make([]byte, len(contents))
	copy(clone, contents)
	f := &domain.InputFile{Name: name, Contents: clone}
	a.entries[k] = f
	return f
}

// Len returns the number of distinct buffers held.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}
