package services

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"sextant/src/frame"
)

// CachedMarketData memoizes price queries for read-mostly reuse across runs.
// The cache is best-effort, last-writer-wins; it is not a correctness
// mechanism, and backtests can bypass it with the noCache flag.
type CachedMarketData struct {
	inner MarketDataService
	cache *gocache.Cache
}

func NewCachedMarketData(inner MarketDataService, ttl time.Duration) *CachedMarketData {
	return &CachedMarketData{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *CachedMarketData) GetPrices(ctx context.Context, query PriceQuery) (*frame.PriceTable, error) {
	key := fmt.Sprintf("%v|%v|%v|%v|%v|%v|%v",
		query.Fields, query.Start, query.End, query.Sids, query.Universes, query.ExcludeSids, query.Times)

	if cached, found := s.cache.Get(key); found {
		log.Debugf("price cache hit for %s", key)
		return cached.(*frame.PriceTable), nil
	}

	prices, err := s.inner.GetPrices(ctx, query)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, prices, gocache.DefaultExpiration)
	return prices, nil
}

// Uncached returns the wrapped service, bypassing the cache.
func (s *CachedMarketData) Uncached() MarketDataService {
	return s.inner
}
