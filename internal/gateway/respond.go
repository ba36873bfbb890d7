package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	catalogapp "github.com/shophub/storefront/internal/catalog/app"
	"github.com/shophub/storefront/internal/docstore"
	identityapp "github.com/shophub/storefront/internal/identity/app"
	messagesapp "github.com/shophub/storefront/internal/messages/app"
	orderapp "github.com/shophub/storefront/internal/order/app"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.log.Error("encode response", slog.Any("err", err))
		}
	}
}

// writeError maps service sentinels onto HTTP statuses. Not-found is a
// distinct outcome from a transient upstream failure, which is distinct
// again from bad input.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", slog.Any("err", err))
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: err.Error()}})
}

func httpStatusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, docstore.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, identityapp.ErrInvalidInput),
		errors.Is(err, messagesapp.ErrInvalidInput),
		errors.Is(err, docstore.ErrUnsetValue):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, identityapp.ErrInvalidCredentials),
		errors.Is(err, identityapp.ErrInvalidToken):
		return http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, identityapp.ErrEmailTaken):
		return http.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code:    "INVALID_ARGUMENT",
			Message: "invalid request body",
		}})
		return false
	}
	return true
}
