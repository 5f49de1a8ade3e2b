// Package httpapi writes the JSON envelopes every endpoint uses and maps
// the apperr taxonomy to HTTP status codes in one place.
//
// Success envelopes are { "message": ..., <entity>: ... }; error envelopes
// are { "message": ... }. No other shape leaves the API.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"go.uber.org/zap"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Message writes a bare { "message": ... } envelope.
func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, map[string]string{"message": msg})
}

// Error maps err's kind to a status and writes the error envelope.
// Unclassified and storage errors become a 500 with a generic message; the
// underlying cause goes to the log, never the client.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := statusFor(apperr.KindOf(err))
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	Message(w, r, status, apperr.Message(err))
}

// Decode reads a JSON body into dst, classifying malformed bodies as
// InvalidInput. An empty body decodes into the zero value so handlers with
// all-optional fields need no special case.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Wrap(apperr.InvalidInput, "Request body is not valid JSON", err)
	}
	return nil
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidInput, apperr.Conflict, apperr.InvalidState:
		// Conflict and InvalidState report as 400 like other business-rule
		// rejections; the message carries the detail.
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
