package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across layers. The HTTP controller maps
// them to response status codes and the CLI uses them for exit handling.
var (
	// ErrTagNotFound marks a lookup for an entity that does not exist.
	ErrTagNotFound = goerr.NewTag("not_found")

	// ErrTagBadRequest marks malformed caller input.
	ErrTagBadRequest = goerr.NewTag("bad_request")

	// ErrTagService marks a failure of an external collaborator
	// (geocoder, profile service). Usually transient.
	ErrTagService = goerr.NewTag("service")
)
