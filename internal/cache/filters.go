package cache

import (
	"context"
	"encoding/json"
	"time"
)

// FiltersKey stores the combined filter-options document served by /filters.
// It is rebuilt on demand and invalidated on any catalog write.
const FiltersKey = "catalog:filters"

// FiltersTTL bounds staleness if an invalidation is ever missed.
const FiltersTTL = 5 * time.Minute

// GetFilters returns the cached filters document, or false when absent or
// Redis is unavailable.
func GetFilters(ctx context.Context, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, FiltersKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetFilters caches the filters document. Failures are ignored; the cache is
// an optimization only.
func SetFilters(ctx context.Context, doc any) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	client.Set(ctx, FiltersKey, raw, FiltersTTL)
}

// InvalidateFilters drops the cached filters document.
func InvalidateFilters(ctx context.Context) {
	if client != nil {
		client.Del(ctx, FiltersKey)
	}
}
