package search

import (
	"context"

	"github.com/platinummonkey/quill/pkg/observability"
)

// keyPrefix namespaces search entries; the query string itself is the rest
// of the key, exact and case-sensitive.
const keyPrefix = "posts_search/"

// IDSource computes the authoritative id set for a query. Implemented by
// the SQL store's SearchPublishedIDs.
type IDSource interface {
	SearchPublishedIDs(ctx context.Context, query string) ([]int64, error)
}

// Service answers title searches through the cache
type Service struct {
	source  IDSource
	cache   Cache
	metrics *observability.Metrics
	logger  *observability.Logger
}

// NewService creates a search service. metrics may be nil in tests.
func NewService(source IDSource, cache Cache, metrics *observability.Metrics, logger *observability.Logger) *Service {
	return &Service{
		source:  source,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// Search returns the ids of published posts matching query. A live cache
// entry is returned without touching the store; otherwise the id set is
// computed, cached and returned. Cache failures degrade to a direct store
// query and are logged, never surfaced.
func (s *Service) Search(ctx context.Context, query string) ([]int64, error) {
	key := keyPrefix + query

	ids, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("query", query).Warn("search cache read failed")
	}
	if ok {
		s.countHit()
		return ids, nil
	}
	s.countMiss()

	ids, err = s.source.SearchPublishedIDs(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, key, ids); err != nil {
		s.logger.WithError(err).WithField("query", query).Warn("search cache write failed")
	}
	return ids, nil
}

func (s *Service) countHit() {
	if s.metrics != nil {
		s.metrics.SearchCacheHitsTotal.WithLabelValues(s.cache.Backend()).Inc()
	}
}

func (s *Service) countMiss() {
	if s.metrics != nil {
		s.metrics.SearchCacheMissesTotal.WithLabelValues(s.cache.Backend()).Inc()
	}
}
