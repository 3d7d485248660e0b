package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrModelUnavailable reports that no model artifact is loaded.
var ErrModelUnavailable = errors.New("ml: model unavailable")

// Model is the opaque pretrained classifier: a normalized RGB tensor in, a
// probability vector [p_normal, p_abnormal] out.
type Model interface {
	Predict(ctx context.Context, tensor []float32) ([]float32, error)
}

// Unavailable is the typed no-model state. The classifier detects it and
// answers every request with the fixed placeholder result instead of failing.
type Unavailable struct{}

func (Unavailable) Predict(context.Context, []float32) ([]float32, error) {
	return nil, ErrModelUnavailable
}

// HTTPModel calls a TensorFlow-Serving-style predict endpoint. The client
// timeout bounds every inference call.
type HTTPModel struct {
	url    string
	client *http.Client
}

func NewHTTPModel(url string, timeout time.Duration) *HTTPModel {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPModel{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Instances [][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float32 `json:"predictions"`
}

func (m *HTTPModel) Predict(ctx context.Context, tensor []float32) ([]float32, error) {
	payload, err := json.Marshal(predictRequest{Instances: [][]float32{tensor}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ml: inference endpoint returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if len(out.Predictions) == 0 || len(out.Predictions[0]) < 2 {
		return nil, errors.New("ml: inference endpoint returned no predictions")
	}
	return out.Predictions[0], nil
}
