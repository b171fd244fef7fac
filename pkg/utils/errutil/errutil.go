package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/utils/logging"
)

// StatusOf maps the error taxonomy tags to an HTTP status code.
// Untagged errors are treated as internal failures.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerr.HasTag(err, types.ErrTagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, types.ErrTagBadRequest):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HandleHTTP logs the error and writes the HTTP error response derived from
// its taxonomy tag. This function ensures that all errors, especially 5xx
// errors, are properly logged with their goerr values and stacks.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	statusCode := StatusOf(err)
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	http.Error(w, err.Error(), statusCode)
}
