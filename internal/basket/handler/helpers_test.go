package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"basket-service/internal/basket/service"
	"basket-service/internal/fileio"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&service.UnknownProductsError{Names: []string{"x"}}, http.StatusNotFound},
		{&service.InfeasibleError{MaxStores: 1, Candidates: 2}, http.StatusConflict},
		{service.ErrNoPendingSelection, http.StatusConflict},
		{fmt.Errorf("wrap: %w", service.ErrTooManyStores), http.StatusRequestEntityTooLarge},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{service.ErrInvalidSelection, http.StatusUnprocessableEntity},
		{service.ErrInvalidQuantity, http.StatusUnprocessableEntity},
		{service.ErrInvalidStoreCap, http.StatusUnprocessableEntity},
		{service.ErrEmptyCart, http.StatusUnprocessableEntity},
		{service.ErrBadSheet, http.StatusUnprocessableEntity},
		{fileio.ErrUnsupported, http.StatusUnsupportedMediaType},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("disk"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), "%v", tt.err)
	}
}

func TestPathParam(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/items/{product}", func(w http.ResponseWriter, req *http.Request) {
		got, _ = pathParam(req, "product")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/Kefir%201%25", nil))
	assert.Equal(t, "Kefir 1%", got)

	// слэш внутри имени приходит закодированным, chi матчит по RawPath
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/Milk%2Fbox", nil))
	assert.Equal(t, "Milk/box", got)
}

func TestAtoi(t *testing.T) {
	n, err := atoi(" ", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = atoi("3", 7)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = atoi("three", 7)
	assert.Error(t, err)
}
