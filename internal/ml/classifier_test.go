package ml

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/respirex/respirex-backend/internal/models"
)

type fakeModel struct {
	probs  []float32
	err    error
	tensor []float32
}

func (f *fakeModel) Predict(_ context.Context, tensor []float32) ([]float32, error) {
	f.tensor = tensor
	if f.err != nil {
		return nil, f.err
	}
	return f.probs, nil
}

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestClassifyDummyMode(t *testing.T) {
	c := NewClassifier(Unavailable{})
	assert.False(t, c.Available())

	// The placeholder is served without decoding, so garbage bytes are fine.
	pred, err := c.Classify(context.Background(), []byte("not an image"))
	require.NoError(t, err)
	assert.Equal(t, models.ResultNegative, pred.Result)
	assert.Equal(t, 85.5, pred.Confidence)
	assert.Equal(t, models.RiskLow, pred.Risk)
}

func TestClassifyNilModelDefaultsToDummy(t *testing.T) {
	c := NewClassifier(nil)
	assert.False(t, c.Available())

	pred, err := c.Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.ResultNegative, pred.Result)
	assert.Equal(t, 85.5, pred.Confidence)
}

func TestClassifyDecodeFailure(t *testing.T) {
	model := &fakeModel{probs: []float32{0.9, 0.1}}
	c := NewClassifier(model)
	require.True(t, c.Available())

	_, err := c.Classify(context.Background(), []byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrImageDecode)
	assert.Nil(t, model.tensor, "model must not run on undecodable input")
}

func TestClassifyPreprocessing(t *testing.T) {
	model := &fakeModel{probs: []float32{0.7, 0.3}}
	c := NewClassifier(model)

	// A 10x10 mid-gray image: every channel should land near 0.5 after
	// resizing and scaling.
	img := encodePNG(t, 10, 10, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	_, err := c.Classify(context.Background(), img)
	require.NoError(t, err)

	require.Len(t, model.tensor, inputSize*inputSize*3)
	for _, v := range model.tensor {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
		assert.InDelta(t, 0.502, float64(v), 0.01)
	}
}

func TestClassifyWhiteAndBlackExtremes(t *testing.T) {
	model := &fakeModel{probs: []float32{0.5, 0.5}}
	c := NewClassifier(model)

	white := encodePNG(t, 8, 8, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	_, err := c.Classify(context.Background(), white)
	require.NoError(t, err)
	for _, v := range model.tensor {
		assert.InDelta(t, 1.0, float64(v), 1e-6)
	}

	black := encodePNG(t, 8, 8, color.RGBA{A: 255})
	_, err = c.Classify(context.Background(), black)
	require.NoError(t, err)
	for _, v := range model.tensor {
		assert.InDelta(t, 0.0, float64(v), 1e-6)
	}
}

func TestClassifyInferenceError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	c := NewClassifier(model)

	img := encodePNG(t, 4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	_, err := c.Classify(context.Background(), img)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrImageDecode)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name           string
		probs          []float32
		wantResult     models.ResultLabel
		wantConfidence float64
		wantRisk       models.RiskTier
	}{
		{"normal wins", []float32{0.9, 0.1}, models.ResultNegative, 90, models.RiskLow},
		{"abnormal high confidence", []float32{0.05, 0.95}, models.ResultPositive, 95, models.RiskHigh},
		{"abnormal moderate confidence", []float32{0.35, 0.65}, models.ResultPositive, 65, models.RiskLow},
		{"abnormal at the 80 boundary", []float32{0.2, 0.8}, models.ResultPositive, 80, models.RiskLow},
		{"tie keeps class zero", []float32{0.5, 0.5}, models.ResultNegative, 50, models.RiskLow},
		{"confidence rounds to two decimals", []float32{0.123456, 0.876544}, models.ResultPositive, 87.65, models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := interpret(tt.probs)
			assert.Equal(t, tt.wantResult, pred.Result)
			assert.InDelta(t, tt.wantConfidence, pred.Confidence, 1e-9)
			assert.Equal(t, tt.wantRisk, pred.Risk)
		})
	}
}
