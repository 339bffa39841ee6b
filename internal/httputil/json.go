// Package httputil provides the JSON request/response helpers shared by the
// REST handlers and middleware.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/nemesis-app/nemesis-server/internal/errors"
)

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is required")
		}
		return apperrors.Validation("invalid request body: " + err.Error())
	}
	return nil
}

// WriteJSON writes data as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse is the wire shape of every error the API returns.
type errorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WriteError writes err as a JSON error response. Service errors carry their
// own status and code; anything else becomes a 500 with a generic message so
// internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	svcErr := apperrors.GetServiceError(err)
	if svcErr == nil {
		svcErr = apperrors.Internal("internal server error", err)
	}
	WriteJSON(w, svcErr.HTTPStatus, errorResponse{
		Error:   svcErr.Message,
		Code:    string(svcErr.Code),
		Details: svcErr.Details,
	})
}
