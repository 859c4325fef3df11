package form

import (
	"context"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

var (
	partsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "detailing_client_parts_cache_hits_total",
		Help: "Запчасти типа работ взяты из кэша формы",
	})

	partsCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "detailing_client_parts_cache_misses_total",
		Help: "Запчасти типа работ запрошены у сервера",
	})
)

type partsFetcher func(ctx context.Context, code string) ([]domain.Part, error)

// partsCache запчасти по коду типа работ на время жизни одной формы.
// Не более одного запроса на код; ошибка запоминается как пустой список.
type partsCache struct {
	cache *expirable.LRU[string, []domain.Part]
	group singleflight.Group
	fetch partsFetcher
	log   Logger
}

func newPartsCache(fetch partsFetcher, log Logger) *partsCache {
	return &partsCache{
		// размер 0 и ttl 0: без вытеснения и без истечения
		cache: expirable.NewLRU[string, []domain.Part](0, nil, 0),
		fetch: fetch,
		log:   log,
	}
}

// Get возвращает запчасти для кода. Ошибка возвращается только при отмене ctx,
// такой результат не запоминается.
func (c *partsCache) Get(ctx context.Context, code string) ([]domain.Part, error) {
	if parts, ok := c.cache.Get(code); ok {
		partsCacheHits.Inc()
		return parts, nil
	}

	v, err, _ := c.group.Do(code, func() (interface{}, error) {
		if parts, ok := c.cache.Get(code); ok {
			partsCacheHits.Inc()
			return parts, nil
		}

		partsCacheMisses.Inc()
		parts, err := c.fetch(ctx, code)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.log.Warn("partsCache.Get: code=%s, fetch failed: %v", code, err)
			parts = []domain.Part{}
		}

		c.cache.Add(code, parts)
		return parts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Part), nil
}

// Snapshot загруженные коды -> запчасти
func (c *partsCache) Snapshot() map[string][]domain.Part {
	result := make(map[string][]domain.Part, c.cache.Len())
	for _, code := range c.cache.Keys() {
		if parts, ok := c.cache.Peek(code); ok {
			result[code] = parts
		}
	}
	return result
}

// partsFromEntries выбирает запчасти из записей справочника типа code
func partsFromEntries(entries []domain.DictionaryEntry) []domain.Part {
	parts := make([]domain.Part, 0, len(entries))
	for i := range entries {
		p, err := entries[i].ToPart()
		if err != nil {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}
