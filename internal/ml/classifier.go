// Package ml wraps the pretrained X-ray model behind a narrow adapter.
// Preprocessing matches the model's training pipeline: 128x128 RGB with pixel
// values scaled to [0,1]. Skipping the scaling step produces silently wrong
// confidence values.
package ml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/respirex/respirex-backend/internal/models"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrImageDecode reports an upload that could not be decoded as an image.
var ErrImageDecode = errors.New("ml: image decode failed")

const inputSize = 128

// Prediction is the adapter output. Risk here is the coarse model-stage tier;
// scoring.DeriveRisk remains authoritative for anything user-facing.
type Prediction struct {
	Result     models.ResultLabel
	Confidence float64
	Risk       models.RiskTier
}

// FallbackPrediction is the fixed placeholder result: served for every
// request in dummy mode, and by callers that choose to degrade instead of
// failing.
func FallbackPrediction() Prediction {
	return Prediction{
		Result:     models.ResultNegative,
		Confidence: 85.5,
		Risk:       models.RiskLow,
	}
}

// Classifier turns image bytes into a prediction. The model is injected once
// at construction and read-only thereafter, so a single classifier is shared
// across requests without locking.
type Classifier struct {
	model Model
}

func NewClassifier(model Model) *Classifier {
	if model == nil {
		model = Unavailable{}
	}
	return &Classifier{model: model}
}

// Available reports whether a real model is loaded.
func (c *Classifier) Available() bool {
	_, dummy := c.model.(Unavailable)
	return !dummy
}

// Classify decodes, normalizes and runs inference on an uploaded image.
// In dummy mode it returns the placeholder without touching the bytes.
func (c *Classifier) Classify(ctx context.Context, imageBytes []byte) (Prediction, error) {
	if !c.Available() {
		return FallbackPrediction(), nil
	}

	tensor, err := preprocess(imageBytes)
	if err != nil {
		return Prediction{}, err
	}

	probs, err := c.model.Predict(ctx, tensor)
	if err != nil {
		return Prediction{}, fmt.Errorf("ml: inference failed: %w", err)
	}
	if len(probs) == 0 {
		return Prediction{}, errors.New("ml: inference returned empty probability vector")
	}

	return interpret(probs), nil
}

// preprocess decodes the upload as a color image, resizes it to the trained
// input resolution and flattens it to a unit-interval RGB tensor.
func preprocess(imageBytes []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	resized := imaging.Resize(img, inputSize, inputSize, imaging.Lanczos)

	tensor := make([]float32, 0, inputSize*inputSize*3)
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			tensor = append(tensor,
				float32(r>>8)/255.0,
				float32(g>>8)/255.0,
				float32(b>>8)/255.0,
			)
		}
	}
	return tensor, nil
}

// interpret maps the probability vector to a prediction. Class 0 is normal,
// class 1 is abnormal.
func interpret(probs []float32) Prediction {
	classIdx := 0
	best := probs[0]
	for i, p := range probs {
		if p > best {
			best = p
			classIdx = i
		}
	}

	confidence := math.Round(float64(best)*100*100) / 100

	if classIdx == 1 {
		risk := models.RiskLow
		if confidence > 80 {
			risk = models.RiskHigh
		}
		return Prediction{Result: models.ResultPositive, Confidence: confidence, Risk: risk}
	}
	return Prediction{Result: models.ResultNegative, Confidence: confidence, Risk: models.RiskLow}
}
