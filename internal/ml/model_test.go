package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPModelPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Instances, 1)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, req.Instances[0])

		json.NewEncoder(w).Encode(predictResponse{Predictions: [][]float32{{0.25, 0.75}}})
	}))
	defer srv.Close()

	m := NewHTTPModel(srv.URL, 5*time.Second)
	probs, err := m.Predict(context.Background(), []float32{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.75}, probs)
}

func TestHTTPModelErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewHTTPModel(srv.URL, 5*time.Second)
	_, err := m.Predict(context.Background(), []float32{0.1})
	assert.Error(t, err)
}

func TestHTTPModelEmptyPredictions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(predictResponse{})
	}))
	defer srv.Close()

	m := NewHTTPModel(srv.URL, 5*time.Second)
	_, err := m.Predict(context.Background(), []float32{0.1})
	assert.Error(t, err)
}

func TestUnavailablePredict(t *testing.T) {
	_, err := Unavailable{}.Predict(context.Background(), nil)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}
