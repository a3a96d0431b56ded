// Package domain contains the core domain model for the resolved target
// graph and the include checker's verdicts.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph is the universe of resolved targets, keyed by full label. Unlike a
// task schedule, the dependency edges here may form cycles (private deps
// combined with circular-include allowlists make that legal), so the graph
// performs no topological validation. It is built once by the loader and
// read-only afterwards.
type Graph struct {
	targets map[Label]*Target
	order   []Label
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{targets: make(map[Label]*Target)}
}

// AddTarget adds a target to the graph. It returns an error if a target
// with the same label already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Label]; exists {
		return zerr.With(ErrTargetAlreadyExists, "label", t.Label.UserVisibleName(true))
	}
	g.targets[t.Label] = t
	g.order = append(g.order, t.Label)
	return nil
}

// Target looks up a target by its full label.
func (g *Graph) Target(l Label) (*Target, bool) {
	t, ok := g.targets[l]
	return t, ok
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Walk returns an iterator over all targets in insertion order.
func (g *Graph) Walk() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, l := range g.order {
			if !yield(g.targets[l]) {
				return
			}
		}
	}
}
