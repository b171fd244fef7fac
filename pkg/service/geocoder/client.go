// Package geocoder implements the place-name to coordinate lookup against a
// Nominatim-compatible search endpoint, with an LRU memoization layer since
// locations do not move.
package geocoder

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/utils/safe"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// client implements interfaces.Geocoder against a Nominatim-compatible API
type client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

var _ interfaces.Geocoder = &client{}

type Option func(*client)

// WithBaseURL overrides the search endpoint, e.g. for a self-hosted
// Nominatim instance or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a new geocoder client
func New(opts ...Option) interfaces.Geocoder {
	c := &client{
		baseURL:    defaultBaseURL,
		userAgent:  "musette-recommender",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// place result as returned by the Nominatim search API. Coordinates come as
// decimal strings.
type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *client) Geocode(ctx context.Context, placeName string) (*model.Location, error) {
	if placeName == "" {
		return nil, nil
	}

	query := url.Values{
		"q":      []string{placeName},
		"format": []string{"json"},
		"limit":  []string{"1"},
	}
	reqURL := c.baseURL + "/search?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build geocode request", goerr.V("place", placeName))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "geocode request failed",
			goerr.V("place", placeName), goerr.T(types.ErrTagService))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("geocode service returned non-200",
			goerr.V("place", placeName), goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)), goerr.T(types.ErrTagService))
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, goerr.Wrap(err, "failed to decode geocode response",
			goerr.V("place", placeName), goerr.T(types.ErrTagService))
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid latitude in geocode response",
			goerr.V("place", placeName), goerr.V("lat", places[0].Lat), goerr.T(types.ErrTagService))
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid longitude in geocode response",
			goerr.V("place", placeName), goerr.V("lon", places[0].Lon), goerr.T(types.ErrTagService))
	}

	return &model.Location{Lat: lat, Lon: lon}, nil
}
