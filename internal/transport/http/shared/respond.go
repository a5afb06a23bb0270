// Package shared holds JSON response helpers used by every feature handler.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "scanid/pkg/domain-errors"
)

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteError maps a domain error to an HTTP status and a stable error body.
// Non-domain errors collapse to a generic internal error so internals never
// leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.HTTPStatus(err)
	code := dErrors.CodeOf(err)

	description := "internal server error"
	var de *dErrors.Error
	if errors.As(err, &de) {
		description = de.Message
	}

	WriteJSON(w, status, errorResponse{
		Error:            string(code),
		ErrorDescription: description,
	})
}
