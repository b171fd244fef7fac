package geocoder

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"golang.org/x/sync/singleflight"
)

// Cached memoizes geocode results by place name. Entries are never
// invalidated: locations do not move within the lifetime of this process.
// Unknown place names (nil results) are cached as well. Concurrent lookups
// of the same place collapse into one upstream request.
type Cached struct {
	inner interfaces.Geocoder
	cache *lru.Cache[string, *model.Location]
	group singleflight.Group
}

var _ interfaces.Geocoder = &Cached{}

// NewCached wraps a geocoder with an LRU cache of the given size
func NewCached(inner interfaces.Geocoder, size int) (*Cached, error) {
	cache, err := lru.New[string, *model.Location](size)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create geocode cache", goerr.V("size", size))
	}
	return &Cached{
		inner: inner,
		cache: cache,
	}, nil
}

func (c *Cached) Geocode(ctx context.Context, placeName string) (*model.Location, error) {
	if loc, ok := c.cache.Get(placeName); ok {
		return loc, nil
	}

	v, err, _ := c.group.Do(placeName, func() (any, error) {
		loc, err := c.inner.Geocode(ctx, placeName)
		if err != nil {
			return nil, err
		}
		c.cache.Add(placeName, loc)
		return loc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Location), nil
}
