package checker

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
)

// ChainLink is one step of a dependency chain. IsPublic records whether
// the edge leading into Target (from the next link) is a public-dep edge.
type ChainLink struct {
	Target   *domain.Target
	IsPublic bool
}

// Chain is a reverse dependency chain: chain[0] is the include's
// destination target and chain[len-1] is the including target.
type Chain []ChainLink

// breadcrumb records how a target was first discovered during a walk:
// which target enqueued it and whether that edge was public.
type breadcrumb struct {
	predecessor *domain.Target
	isPublic    bool
}

// reachabilityCache memoizes the two dependency walks rooted at one source
// target. Each walk runs at most once; the breadcrumb tables are retained
// so chains can be reconstructed on every later query without re-walking.
type reachabilityCache struct {
	source *domain.Target

	mu sync.RWMutex
	// permitted holds breadcrumbs for the public-edges-only walk (with
	// the one-shot first-hop relaxation); any holds the walk over all
	// edges.
	permitted     map[*domain.Target]breadcrumb
	permittedDone bool
	any           map[*domain.Target]breadcrumb
	anyDone       bool
}

func newReachabilityCache(source *domain.Target) *reachabilityCache {
	return &reachabilityCache{source: source}
}

// searchForDependencyTo reports whether searchFor is reachable from the
// cache's source target via the requested walk flavour, and if so returns
// the reverse chain from searchFor back to the source.
func (c *reachabilityCache) searchForDependencyTo(searchFor *domain.Target, permitted bool) (Chain, bool) {
	c.mu.RLock()
	if c.walkDone(permitted) {
		chain, ok := c.reconstruct(searchFor, permitted)
		c.mu.RUnlock()
		return chain, ok
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check: another goroutine may have completed the walk while we
	// were waiting for the exclusive lock.
	if !c.walkDone(permitted) {
		c.performDependencyWalk(permitted)
	}
	return c.reconstruct(searchFor, permitted)
}

func (c *reachabilityCache) walkDone(permitted bool) bool {
	if permitted {
		return c.permittedDone
	}
	return c.anyDone
}

// performDependencyWalk runs a breadth-first search over the dependency
// graph from the source target, recording a breadcrumb at the first
// discovery of each target. BFS layering makes the recorded path a
// shortest one; write-once breadcrumbs make cycles terminate.
//
// When permitted is true only public-dep edges are followed, except on the
// very first hop: a direct dependent may include its direct dependency's
// headers regardless of how the edge was declared.
//
// The caller must hold the exclusive lock.
func (c *reachabilityCache) performDependencyWalk(permitted bool) {
	table := make(map[*domain.Target]breadcrumb)

	queue := []*domain.Target{c.source}
	firstHop := true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, dep := range cur.PublicDeps {
			if _, seen := table[dep]; seen || dep == c.source {
				continue
			}
			table[dep] = breadcrumb{predecessor: cur, isPublic: true}
			queue = append(queue, dep)
		}

		if firstHop || !permitted {
			firstHop = false
			for _, dep := range cur.PrivateDeps {
				if _, seen := table[dep]; seen || dep == c.source {
					continue
				}
				table[dep] = breadcrumb{predecessor: cur, isPublic: false}
				queue = append(queue, dep)
			}
		}
	}

	if permitted {
		c.permitted = table
		c.permittedDone = true
	} else {
		c.any = table
		c.anyDone = true
	}
}

// reconstruct rebuilds the reverse chain to searchFor from the retained
// breadcrumbs. The caller must hold at least the shared lock and the walk
// must be complete.
func (c *reachabilityCache) reconstruct(searchFor *domain.Target, permitted bool) (Chain, bool) {
	table := c.any
	if permitted {
		table = c.permitted
	}

	crumb, ok := table[searchFor]
	if !ok {
		return nil, false
	}

	chain := Chain{{Target: searchFor, IsPublic: crumb.isPublic}}
	cur := crumb.predecessor
	for cur != c.source {
		crumb = table[cur]
		chain = append(chain, ChainLink{Target: cur, IsPublic: crumb.isPublic})
		cur = crumb.predecessor
	}
	chain = append(chain, ChainLink{Target: c.source, IsPublic: true})
	return chain, true
}

// numCacheShards bounds lock contention on the cache map under the worker
// count typical for this workload.
const numCacheShards = 64

type cacheShard struct {
	mu     sync.RWMutex
	caches map[*domain.Target]*reachabilityCache
}

// cacheFor returns the reachability cache for the given source target,
// creating it on first use.
func (c *Checker) cacheFor(t *domain.Target) *reachabilityCache {
	shard := &c.shards[xxhash.Sum64String(t.Label.UserVisibleName(true))%numCacheShards]

	shard.mu.RLock()
	rc := shard.caches[t]
	shard.mu.RUnlock()
	if rc != nil {
		return rc
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if rc = shard.caches[t]; rc == nil {
		rc = newReachabilityCache(t)
		shard.caches[t] = rc
	}
	return rc
}

// isDependencyOf reports whether searchFor is reachable from the cache's
// source target. Permitted chains are considered first: if one exists it
// wins no matter how many non-permitted chains also exist. A target is
// never reported as a dependency of itself; callers recognise the
// (found=false, permitted=true) combination as self-reference.
func (c *Checker) isDependencyOf(searchFor *domain.Target, cache *reachabilityCache) (chain Chain, found, permitted bool) {
	if searchFor == cache.source {
		return nil, false, true
	}

	if chain, ok := cache.searchForDependencyTo(searchFor, true); ok {
		return chain, true, true
	}
	if chain, ok := cache.searchForDependencyTo(searchFor, false); ok {
		return chain, true, false
	}
	return nil, false, false
}
