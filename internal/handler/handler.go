package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cafe-backend/internal/auth"
	"cafe-backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// kindStatus maps a domain error kind to its HTTP status code.
var kindStatus = map[model.ErrorKind]int{
	model.KindValidation:   http.StatusBadRequest,
	model.KindUnauthorized: http.StatusUnauthorized,
	model.KindForbidden:    http.StatusForbidden,
	model.KindNotFound:     http.StatusNotFound,
	model.KindConflict:     http.StatusConflict,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps an error to an HTTP response. Domain errors carry their
// kind and message; anything else is an opaque internal error.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := kindStatus[domainErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		logger.Warn().Str("kind", string(domainErr.Kind)).Str("error", domainErr.Message).Int("status", status).Msg("request rejected")
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Kind: string(domainErr.Kind)})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// writeBadRequest writes a 400 with the given message.
func writeBadRequest(w http.ResponseWriter, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Msg("bad request")
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Kind: string(model.KindValidation)})
}

// identity extracts the caller identity placed on the context by the auth
// middleware. A missing identity means the request bypassed the middleware,
// which the router never allows for API routes; it is answered with 401.
func identity(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (auth.Identity, bool) {
	ident, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, logger)
		return auth.Identity{}, false
	}
	return ident, true
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}
