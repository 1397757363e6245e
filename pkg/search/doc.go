// Package search provides the TTL-cached title search over published posts.
//
// The cache stores only post ids keyed by the exact query string, so memory
// use is bounded and the final post fetch always re-queries storage. A cache
// hit within the TTL returns the id set computed at that time: new posts
// matching the query become visible only after the entry expires. Cached
// results are computed against published posts only and are never
// re-filtered by the caller's identity.
//
// Two backends implement Cache: Redis for multi-node deployments and an
// in-process expirable LRU when no Redis is configured. Concurrent misses
// for the same key may each recompute; the last write wins and every
// written entry is internally consistent.
package search
