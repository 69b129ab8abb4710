package compatibility

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/angelmondragon/partsfinder-backend/pkg/enums"
	"github.com/angelmondragon/partsfinder-backend/pkg/metrics"
	"github.com/angelmondragon/partsfinder-backend/pkg/redis"
)

const cacheScope = "vehicle_products"

// ResponseCache stores serialized aggregation results.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(scope string, parts ...string) string
}

type cachedResult struct {
	Data map[enums.Category][]cachedProduct `json:"data"`
}

func (s *service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *service) cacheKey(q VehicleQuery) string {
	year := ""
	if q.Year != nil {
		year = strconv.Itoa(*q.Year)
	}
	return s.cache.CacheKey(cacheScope, q.BrandSlug, q.ModelSlug, deref(q.Motorisation), deref(q.VehicleModel), year)
}

// readCache never fails the request: any cache problem is a miss.
func (s *service) readCache(ctx context.Context, q VehicleQuery) (*VehicleProducts, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(q))
	if err != nil {
		if redis.IsNil(err) {
			s.metrics.IncCache(metrics.CacheMiss)
			return nil, false
		}
		s.metrics.IncCache(metrics.CacheError)
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vehicle_products.cache_read_failed")
		return nil, false
	}

	var cached cachedResult
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.metrics.IncCache(metrics.CacheError)
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vehicle_products.cache_decode_failed")
		return nil, false
	}
	data := emptyProducts()
	for category, items := range cached.Data {
		if !category.IsValid() {
			continue
		}
		products := make([]Product, 0, len(items))
		for _, item := range items {
			products = append(products, item)
		}
		data[category] = products
	}
	s.metrics.IncCache(metrics.CacheHit)
	return newVehicleProducts(q, data), true
}

func (s *service) writeCache(ctx context.Context, q VehicleQuery, result *VehicleProducts) {
	if !s.cacheEnabled() {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vehicle_products.cache_encode_failed")
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(q), string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "vehicle_products.cache_write_failed")
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
