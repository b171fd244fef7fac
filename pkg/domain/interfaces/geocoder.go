package interfaces

import (
	"context"

	"github.com/opencity-lab/musette/pkg/domain/model"
)

// Geocoder resolves a place name to a geographic point. It returns
// (nil, nil) when the place is unknown; an error indicates the lookup
// service itself failed.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*model.Location, error)
}
