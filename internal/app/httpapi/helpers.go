package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/stagecall/stagecall/internal/platform/errors"
)

// actorHeader carries the acting user's id. Session management lives outside
// this service; the gateway trusts the upstream proxy to set the header.
const actorHeader = "X-User-ID"

type messageResponse struct {
	Msg string `json:"msg"`
}

type recordResponse struct {
	Msg    string `json:"msg"`
	Record any    `json:"record,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, messageResponse{Msg: msg})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// writeError renders domain errors through the registry, which resolves ids
// to readable labels, and maps the error code to a status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	msg, status := s.app.Errors.Render(r.Context(), r.Header.Get("Accept-Language"), err)
	writeJSON(w, status, errorResponse{Error: msg, Code: string(apperrors.GetCode(err))})
}

// actor returns the acting user's id, failing the request when absent.
func (s *Server) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(actorHeader)
	if id == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing acting user"})
		return "", false
	}
	return id, true
}
