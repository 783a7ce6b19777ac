package ginpbjson

import (
	"errors"
	"net/http"

	"github.com/deepankarm/pbjson/pkg/pbjson"
)

// ErrorResponse is the structured error body returned for a failed
// decode or a registry lookup miss, a typed stand-in for the
// gin.H{"error": ...} maps the example handlers return on failure --
// structured here so a caller can branch on Kind instead of matching
// an error string.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail mirrors one *perror.Error.
type ErrorDetail struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// statusForKind maps a decode error kind to the HTTP status a caller
// should see: malformed input is a 400, engine-internal invariant
// violations and resource exhaustion are a 500.
func statusForKind(k pbjson.Kind) int {
	switch k {
	case pbjson.KindInternal, pbjson.KindOutOfMemory:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// errorResponse builds the body and status code for err, which may be a
// *pbjson.Error, a pbjson.Errors aggregate, or a plain registry-lookup
// error (not found).
func errorResponse(err error) (int, ErrorResponse) {
	var single *pbjson.Error
	if errors.As(err, &single) {
		return statusForKind(single.Kind), ErrorResponse{
			Error:   err.Error(),
			Details: []ErrorDetail{{Kind: string(single.Kind), Message: single.Message, Path: single.Path}},
		}
	}

	var agg pbjson.Errors
	if errors.As(err, &agg) {
		status := http.StatusBadRequest
		details := make([]ErrorDetail, 0, len(agg))
		for _, e := range agg {
			if statusForKind(e.Kind) == http.StatusInternalServerError {
				status = http.StatusInternalServerError
			}
			details = append(details, ErrorDetail{Kind: string(e.Kind), Message: e.Message, Path: e.Path})
		}
		return status, ErrorResponse{Error: err.Error(), Details: details}
	}

	return http.StatusNotFound, ErrorResponse{Error: err.Error()}
}
