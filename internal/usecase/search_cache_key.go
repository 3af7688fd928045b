package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"jobboard/internal/infrastructure/cache"
)

type aggregateKeyInput struct {
	Scope    string `json:"scope"`
	Query    string `json:"query"`
	Country  string `json:"country"`
	Category string `json:"category"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// AggregateCacheKey keys the deduplicated aggregation for one upstream query
// shape. Filters and paging run after the cache and are not part of the key.
func AggregateCacheKey(scope, query, country, category string) string {
	in := aggregateKeyInput{
		Scope:    scope,
		Query:    normalizeSearchValue(query),
		Country:  normalizeSearchValue(country),
		Category: normalizeSearchValue(category),
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return cache.AggregateKeyPrefix + hex.EncodeToString(sum[:])
}

func AggregateLockKey(aggregateKey string) string {
	aggregateKey = strings.TrimSpace(aggregateKey)
	return cache.LockKeyPrefix + strings.TrimPrefix(aggregateKey, cache.AggregateKeyPrefix)
}
