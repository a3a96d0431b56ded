package ports

import "go.trai.ch/mason/internal/core/domain"

// GraphLoader produces the resolved target graph and build settings the
// checker runs against. The reference implementation reads a YAML manifest
// of already-resolved targets; it is a stand-in for a full build-language
// frontend, which is out of scope here.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type GraphLoader interface {
	// Load discovers the manifest starting from cwd and returns the target
	// universe together with the build settings.
	Load(cwd string) (*domain.Graph, *domain.BuildSettings, error)
}
