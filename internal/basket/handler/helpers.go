package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"basket-service/internal/basket/service"
	"basket-service/internal/fileio"
	"basket-service/internal/middleware"
)

type errorBody struct {
	Error   string   `json:"error"`
	Unknown []string `json:"unknown,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// statusOf сопоставляет ошибки движка с HTTP-кодами.
func statusOf(err error) int {
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe), errors.Is(err, service.ErrTooManyStores):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInfeasible), errors.Is(err, service.ErrNoPendingSelection):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidSelection),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidStoreCap),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrBadSheet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fileio.ErrUnsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail пишет ошибку клиенту; 5xx логируются с подробностями, наружу уходит только "internal".
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	body := errorBody{Error: err.Error()}
	var ue *service.UnknownProductsError
	if errors.As(err, &ue) {
		body.Unknown = ue.Names
	}
	if status >= 500 {
		h.log(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if status == http.StatusInternalServerError {
			body.Error = "internal"
		}
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf(format, args...)})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("bad json: %w", err)
	}
	return nil
}

func (h *Handler) log(r *http.Request) *zerolog.Logger {
	l := h.logger.With().
		Str("rid", middleware.GetRequestID(r)).
		Str("user", middleware.GetUserID(r)).
		Logger()
	return &l
}

func atoi(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// pathParam: chi матчит по RawPath, если он есть, и тогда параметр ещё закодирован.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}
