package services

import (
	"context"
	"time"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/cache"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
)

const (
	// FeedCacheKey caches the recently-added feed; busted on mutations.
	FeedCacheKey = "recently-added:feed"
	feedCacheTTL = 10 * time.Second
)

// RecentlyAddedService serves the bounded newest-products feed.
type RecentlyAddedService struct {
	recent RecentlyAddedStore
}

func NewRecentlyAddedService(recent RecentlyAddedStore) *RecentlyAddedService {
	return &RecentlyAddedService{recent: recent}
}

// Feed returns the referenced products, newest first, served from cache
// when warm.
func (s *RecentlyAddedService) Feed(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(FeedCacheKey, &cached) {
		metrics.CacheHits.WithLabelValues(FeedCacheKey).Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(FeedCacheKey).Inc()

	out, err := s.recent.Feed(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(FeedCacheKey, out, feedCacheTTL)
	return out, nil
}

// Sweep re-trims the feed to its count cap. Run from the scheduler.
func (s *RecentlyAddedService) Sweep(ctx context.Context) error {
	return s.recent.Trim(ctx)
}
