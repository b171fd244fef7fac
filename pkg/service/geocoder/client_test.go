package geocoder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/service/geocoder"
)

func TestClientGeocode(t *testing.T) {
	t.Run("resolves a known place", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Query().Get("q")).Equal("Bilbao")
			gt.Value(t, r.URL.Query().Get("format")).Equal("json")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"43.2630018","lon":"-2.9350039"}]`))
		}))
		defer srv.Close()

		geo := geocoder.New(geocoder.WithBaseURL(srv.URL))
		loc, err := geo.Geocode(context.Background(), "Bilbao")
		gt.NoError(t, err).Required()
		gt.Value(t, loc).NotNil()
		gt.Number(t, loc.Lat).Equal(43.2630018)
		gt.Number(t, loc.Lon).Equal(-2.9350039)
	})

	t.Run("unknown place returns nil without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		geo := geocoder.New(geocoder.WithBaseURL(srv.URL))
		loc, err := geo.Geocode(context.Background(), "nowhere-at-all")
		gt.NoError(t, err)
		gt.Value(t, loc).Nil()
	})

	t.Run("empty place name short-circuits", func(t *testing.T) {
		geo := geocoder.New(geocoder.WithBaseURL("http://127.0.0.1:1"))
		loc, err := geo.Geocode(context.Background(), "")
		gt.NoError(t, err)
		gt.Value(t, loc).Nil()
	})

	t.Run("non-200 is a service error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		geo := geocoder.New(geocoder.WithBaseURL(srv.URL))
		_, err := geo.Geocode(context.Background(), "Bilbao")
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.ErrTagService)).True()
	})
}

type countingGeocoder struct {
	calls int32
	loc   *model.Location
}

func (g *countingGeocoder) Geocode(ctx context.Context, place string) (*model.Location, error) {
	atomic.AddInt32(&g.calls, 1)
	return g.loc, nil
}

func TestCachedGeocode(t *testing.T) {
	t.Run("repeated lookups hit the cache", func(t *testing.T) {
		inner := &countingGeocoder{loc: &model.Location{Lat: 43.26, Lon: -2.93}}
		cached, err := geocoder.NewCached(inner, 16)
		gt.NoError(t, err).Required()

		ctx := context.Background()
		for i := 0; i < 5; i++ {
			loc, err := cached.Geocode(ctx, "Bilbao")
			gt.NoError(t, err)
			gt.Number(t, loc.Lat).Equal(43.26)
		}
		gt.Number(t, atomic.LoadInt32(&inner.calls)).Equal(int32(1))
	})

	t.Run("negative results are cached too", func(t *testing.T) {
		inner := &countingGeocoder{loc: nil}
		cached, err := geocoder.NewCached(inner, 16)
		gt.NoError(t, err).Required()

		ctx := context.Background()
		for i := 0; i < 3; i++ {
			loc, err := cached.Geocode(ctx, "nowhere")
			gt.NoError(t, err)
			gt.Value(t, loc).Nil()
		}
		gt.Number(t, atomic.LoadInt32(&inner.calls)).Equal(int32(1))
	})

	t.Run("distinct places are cached separately", func(t *testing.T) {
		inner := &countingGeocoder{loc: &model.Location{Lat: 1, Lon: 1}}
		cached, err := geocoder.NewCached(inner, 16)
		gt.NoError(t, err).Required()

		ctx := context.Background()
		_, _ = cached.Geocode(ctx, "Bilbao")
		_, _ = cached.Geocode(ctx, "Trento")
		gt.Number(t, atomic.LoadInt32(&inner.calls)).Equal(int32(2))
	})
}

func TestDistanceKM(t *testing.T) {
	bilbao := model.Location{Lat: 43.2630018, Lon: -2.9350039}
	trento := model.Location{Lat: 46.0664228, Lon: 11.1257601}

	t.Run("zero distance to itself", func(t *testing.T) {
		gt.Number(t, geocoder.DistanceKM(bilbao, bilbao)).Equal(0.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		gt.Number(t, geocoder.DistanceKM(bilbao, trento)).Equal(geocoder.DistanceKM(trento, bilbao))
	})

	t.Run("bilbao to trento is roughly 1140 km", func(t *testing.T) {
		d := geocoder.DistanceKM(bilbao, trento)
		gt.Bool(t, d > 1100 && d < 1200).True()
	})
}
