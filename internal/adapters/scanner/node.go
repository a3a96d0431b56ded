package scanner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the include-scanner Graft node.
const NodeID graft.ID = "adapter.scanner"

func init() {
	graft.Register(graft.Node[ports.IncludeScanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.IncludeScanner, error) {
			return New(), nil
		},
	})
}
