package arena

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the buffer-arena Graft node.
const NodeID graft.ID = "adapter.arena"

func init() {
	graft.Register(graft.Node[ports.BufferArena]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BufferArena, error) {
			return New(), nil
		},
	})
}
