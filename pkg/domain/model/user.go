package model

import "github.com/opencity-lab/musette/pkg/domain/types"

// UnknownAge is the sentinel age used when the profile service does not
// report a birthdate. It is high enough to pass every minimum-age gate.
const UnknownAge = 99

// UserProfile is the slice of an external user profile the recommender
// consumes: demographics, home location and behavioral signals.
type UserProfile struct {
	UserID       string
	Age          int
	HomeLocation string
	UsedAppIDs   []types.ArtifactID
	Tags         []string
}

// Location is a geographic point resolved from a place name
type Location struct {
	Lat float64
	Lon float64
}
