package ports

import "go.trai.ch/mason/internal/core/domain"

// BufferArena owns persistent copies of file buffers. Check tasks release
// their input buffers when they finish, but the errors they emit carry
// locations that must keep pointing at real bytes; persisting through the
// arena breaks that lifetime coupling.
//
//go:generate mockgen -source=arena.go -destination=mocks/mock_arena.go -package=mocks
type BufferArena interface {
	// Persist returns a stable InputFile holding a copy of contents. The
	// returned handle stays valid for the rest of the process. Calling
	// Persist again with the same name and contents may return the same
	// handle.
	Persist(name string, contents []byte) *domain.InputFile
}
