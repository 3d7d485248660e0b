package report

import (
	"bytes"
	"math/rand"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// The synthetic reference population is fixed: same seed and point count on
// every render, so only the patient point differs between reports.
const (
	populationSeed = 42
	populationSize = 150
	trendSlope     = 0.3
)

// populationPoints generates the reference scatter: x evenly spaced over
// [5,95], y on the trend line with gaussian noise, clamped to [0,100].
func populationPoints() (xs, ys []float64) {
	rng := rand.New(rand.NewSource(populationSeed))
	xs = make([]float64, populationSize)
	ys = make([]float64, populationSize)
	for i := 0; i < populationSize; i++ {
		x := 5 + 90*float64(i)/float64(populationSize-1)
		y := x*trendSlope + rng.NormFloat64()*5
		if y < 0 {
			y = 0
		} else if y > 100 {
			y = 100
		}
		xs[i] = x
		ys[i] = y
	}
	return xs, ys
}

// scatterPNG renders the comparative visualization: reference population in
// green, trend line dashed, the patient's (symptom score, model confidence)
// point in red.
func scatterPNG(symptomScore, modelConfidence float64) ([]byte, error) {
	popX, popY := populationPoints()

	green := drawing.Color{R: 0x2e, G: 0xcc, B: 0x71, A: 128}
	trendGreen := drawing.Color{R: 0x27, G: 0xae, B: 0x60, A: 160}
	red := drawing.Color{R: 0xef, G: 0x44, B: 0x44, A: 255}

	graph := chart.Chart{
		Width:  600,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "Symptom Severity",
			Range: &chart.ContinuousRange{Min: 0, Max: 105},
		},
		YAxis: chart.YAxis{
			Name:  "AI Risk Score",
			Range: &chart.ContinuousRange{Min: 0, Max: 105},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Normal Population",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    green,
				},
				XValues: popX,
				YValues: popY,
			},
			chart.ContinuousSeries{
				Name: "Population Trend",
				Style: chart.Style{
					StrokeColor:     trendGreen,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: []float64{5, 95},
				YValues: []float64{5 * trendSlope, 95 * trendSlope},
			},
			chart.ContinuousSeries{
				Name: "Patient Result",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    6,
					DotColor:    red,
				},
				XValues: []float64{symptomScore},
				YValues: []float64{modelConfidence},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
