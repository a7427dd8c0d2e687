// Package observability holds Prometheus metric definitions for the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motorlot_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ListingSearches counts listing search requests by sort directive.
	ListingSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motorlot_listing_searches_total",
		Help: "Total number of listing search requests by sort directive",
	}, []string{"sort"})

	// InquiriesCreated counts accepted public inquiry submissions.
	InquiriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motorlot_inquiries_created_total",
		Help: "Total number of inquiries created through the public endpoint",
	})

	// ImagesStored counts listing image files written to the media store.
	ImagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motorlot_listing_images_stored_total",
		Help: "Total number of listing image files stored",
	})

	// ImagesDeleted counts listing image files removed from the media store.
	ImagesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motorlot_listing_images_deleted_total",
		Help: "Total number of listing image files deleted",
	})
)
