package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/service/geocoder"
	"github.com/urfave/cli/v3"
)

// Geocoder holds CLI flags for the geocoding service
type Geocoder struct {
	baseURL   string
	cacheSize int
}

// Flags returns CLI flags for geocoder configuration
func (g *Geocoder) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "geocoder-url",
			Usage:       "Base URL of a Nominatim-compatible geocoding service",
			Sources:     cli.EnvVars("MUSETTE_GEOCODER_URL"),
			Destination: &g.baseURL,
		},
		&cli.IntFlag{
			Name:        "geocoder-cache-size",
			Usage:       "Number of geocoding results kept in the in-process cache",
			Value:       1024,
			Sources:     cli.EnvVars("MUSETTE_GEOCODER_CACHE_SIZE"),
			Destination: &g.cacheSize,
		},
	}
}

// Configure builds the cached geocoder client
func (g *Geocoder) Configure() (interfaces.Geocoder, error) {
	var opts []geocoder.Option
	if g.baseURL != "" {
		opts = append(opts, geocoder.WithBaseURL(g.baseURL))
	}

	cached, err := geocoder.NewCached(geocoder.New(opts...), g.cacheSize)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build geocoder cache", goerr.V("size", g.cacheSize))
	}
	return cached, nil
}
