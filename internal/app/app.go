// Package app implements the application layer for mason.
package app

import (
	"context"
	"fmt"
	"sort"

	"go.trai.ch/mason/internal/adapters/pool"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/checker"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader  ports.GraphLoader
	fsys    ports.FileSystem
	scanner ports.IncludeScanner
	arena   ports.BufferArena
	logger  ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.GraphLoader,
	fsys ports.FileSystem,
	scanner ports.IncludeScanner,
	arena ports.BufferArena,
	log ports.Logger,
) *App {
	return &App{
		loader:  loader,
		fsys:    fsys,
		scanner: scanner,
		arena:   arena,
		logger:  log,
	}
}

// CheckOptions configures the Check method.
type CheckOptions struct {
	// Force checks targets even if they opted out via check_includes.
	Force bool
	// CheckGenerated extends checking to generated files; only useful
	// after a build has produced them.
	CheckGenerated bool
	// CheckSystem extends checking to <...> includes.
	CheckSystem bool
	// Jobs bounds the worker count; zero means one per CPU.
	Jobs int
}

// Check loads the target graph and runs the header-inclusion check over
// the named targets, or over everything when no names are given. Every
// violation is logged; a non-nil error reports the overall failure.
func (a *App) Check(ctx context.Context, targetNames []string, opts CheckOptions) error {
	graph, settings, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	allTargets := make([]*domain.Target, 0, graph.TargetCount())
	for t := range graph.Walk() {
		allTargets = append(allTargets, t)
	}

	toCheck, err := selectTargets(graph, allTargets, targetNames)
	if err != nil {
		return err
	}

	// The pool is per-run: its size comes from the options.
	workers := pool.New(opts.Jobs)
	defer workers.Shutdown()

	chk, err := checker.New(
		settings,
		allTargets,
		opts.CheckGenerated,
		opts.CheckSystem,
		a.fsys,
		a.scanner,
		workers,
		a.arena,
	)
	if err != nil {
		return zerr.Wrap(err, "failed to build checker")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	violations, err := chk.Run(toCheck, opts.Force)
	if err != nil {
		return zerr.Wrap(err, "header check aborted")
	}

	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			a.logger.Error(v)
		}
		return zerr.With(domain.ErrHeaderCheckFailed, "violations", fmt.Sprintf("%d", len(violations)))
	}

	a.logger.Info(fmt.Sprintf("header check passed: %d target(s)", len(toCheck)))
	return nil
}

// selectTargets resolves the requested target names against the graph.
// Names without a toolchain qualifier match the target in every toolchain.
func selectTargets(graph *domain.Graph, all []*domain.Target, names []string) ([]*domain.Target, error) {
	if len(names) == 0 {
		return all, nil
	}

	var out []*domain.Target
	for _, name := range names {
		label, err := domain.ParseLabel(name)
		if err != nil {
			return nil, err
		}

		if label.Toolchain != "" {
			t, ok := graph.Target(label)
			if !ok {
				return nil, zerr.With(domain.ErrTargetNotFound, "target", name)
			}
			out = append(out, t)
			continue
		}

		found := false
		for _, t := range all {
			if t.Label.MatchesExceptToolchain(label) {
				out = append(out, t)
				found = true
			}
		}
		if !found {
			return nil, zerr.With(domain.ErrTargetNotFound, "target", name)
		}
	}
	return out, nil
}

// sortViolations orders violations by file, position and title. The
// checker itself makes no ordering promise, so the presentation layer
// imposes one to keep output stable.
func sortViolations(violations []*domain.CheckError) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		an, bn := "", ""
		if a.Where.File != nil {
			an = a.Where.File.Name
		}
		if b.Where.File != nil {
			bn = b.Where.File.Name
		}
		if an != bn {
			return an < bn
		}
		if a.Where.Begin.Line != b.Where.Begin.Line {
			return a.Where.Begin.Line < b.Where.Begin.Line
		}
		if a.Where.Begin.Column != b.Where.Begin.Column {
			return a.Where.Begin.Column < b.Where.Begin.Column
		}
		return a.Title < b.Title
	})
}
