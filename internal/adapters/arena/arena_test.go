package arena_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/arena"
)

func TestArena_PersistClones(t *testing.T) {
	a := arena.New()

	buf := []byte("#include \"x.h\"\n")
	f := a.Persist("//foo/bar.cc", buf)
	require.NotNil(t, f)
	assert.Equal(t, "//foo/bar.cc", f.Name)
	assert.Equal(t, string(buf), string(f.Contents))

	// Mutating the caller's buffer must not affect the persisted copy.
	buf[0] = '!'
	assert.Equal(t, byte('#'), f.Contents[0])
}

func TestArena_DedupSameContent(t *testing.T) {
	a := arena.New()

	f1 := a.Persist("//foo/bar.cc", []byte("same"))
	f2 := a.Persist("//foo/bar.cc", []byte("same"))
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, a.Len())

	// Different content under the same name is a distinct entry.
	f3 := a.Persist("//foo/bar.cc", []byte("different"))
	assert.NotSame(t, f1, f3)

	// Same content under a different name is also distinct.
	f4 := a.Persist("//foo/other.cc", []byte("same"))
	assert.NotSame(t, f1, f4)
	assert.Equal(t, 3, a.Len())
}

func TestArena_ConcurrentPersist(t *testing.T) {
	a := arena.New()

	var wg sync.WaitGroup

	const goroutines = 16
	files := make(chan string, goroutines)
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			f := a.Persist("//shared.cc", []byte("contents"))
			files <- f.Name
		}()
	}
	wg.Wait()
	close(files)

	for name := range files {
		assert.Equal(t, "//shared.cc", name)
	}
	assert.Equal(t, 1, a.Len())
}
