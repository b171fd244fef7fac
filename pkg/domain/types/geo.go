package types

// UnsetCoordinate is the sentinel clients send for lat and lon when they
// want the user's home location geocoded instead of supplying a point.
// Both coordinates must carry the sentinel for it to take effect.
const UnsetCoordinate = -1000
