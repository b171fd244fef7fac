package profile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/service/profile"
)

// fixedNow pins the clock so age derivation is deterministic
func fixedNow() time.Time {
	return time.Date(2016, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestGetUser(t *testing.T) {
	t.Run("parses the full profile", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			gt.Bool(t, ok).True()
			gt.Value(t, user).Equal("svc-user")
			gt.Value(t, pass).Equal("svc-pass")
			gt.Value(t, r.URL.Path).Equal("/dev/api/cdv/getusermetadata/5")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"usedApps": [{"appID": 1}, {"appID": 2}],
				"birthdate": "1981-05-01",
				"city": "Bilbao",
				"userTags": ["sports", "music"]
			}`))
		}))
		defer srv.Close()

		svc, err := profile.New(srv.URL, "svc-user", "svc-pass", profile.WithClock(fixedNow))
		gt.NoError(t, err).Required()

		user, err := svc.GetUser(context.Background(), "5")
		gt.NoError(t, err).Required()
		gt.Value(t, user.HomeLocation).Equal("Bilbao")
		gt.Number(t, user.Age).Equal(35)
		gt.Value(t, user.UsedAppIDs).Equal([]types.ArtifactID{1, 2})
		gt.Value(t, user.Tags).Equal([]string{"sports", "music"})
	})

	t.Run("birthday later this year is not counted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"birthdate": "1981-12-01"}`))
		}))
		defer srv.Close()

		svc, err := profile.New(srv.URL, "u", "p", profile.WithClock(fixedNow))
		gt.NoError(t, err).Required()

		user, err := svc.GetUser(context.Background(), "5")
		gt.NoError(t, err).Required()
		gt.Number(t, user.Age).Equal(34)
	})

	t.Run("missing birthdate defaults to the unknown-age sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"usedApps": [{"appID": 7}], "city": "Trento"}`))
		}))
		defer srv.Close()

		svc, err := profile.New(srv.URL, "u", "p", profile.WithClock(fixedNow))
		gt.NoError(t, err).Required()

		user, err := svc.GetUser(context.Background(), "5")
		gt.NoError(t, err).Required()
		gt.Number(t, user.Age).Equal(99)
		gt.Value(t, user.HomeLocation).Equal("Trento")
		gt.Array(t, user.UsedAppIDs).Length(1)
	})

	t.Run("non-200 propagates a service error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such user", http.StatusNotFound)
		}))
		defer srv.Close()

		svc, err := profile.New(srv.URL, "u", "p")
		gt.NoError(t, err).Required()

		_, err = svc.GetUser(context.Background(), "unknown")
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.ErrTagService)).True()
	})

	t.Run("empty base URL is rejected", func(t *testing.T) {
		_, err := profile.New("", "u", "p")
		gt.Value(t, err).NotNil()
	})
}
