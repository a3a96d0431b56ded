// Package ports defines the core interfaces for the application.
package ports

// FileSystem reads file contents for the checker. Implementations must
// return an error satisfying errors.Is(err, io/fs.ErrNotExist) when the
// file does not exist, so callers can tell "missing" from "unreadable".
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ReadFile returns the contents of the file at the given path.
	ReadFile(path string) ([]byte, error)
}
