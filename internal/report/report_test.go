package report

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/respirex/respirex-backend/internal/models"
)

type fakeFetcher struct {
	data []byte
	err  error
}

func (f *fakeFetcher) Fetch(string) ([]byte, error) {
	return f.data, f.err
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func sampleRecord(result models.ResultLabel, confidence float64) *models.ScreeningRecord {
	return &models.ScreeningRecord{
		ID:              uuid.New(),
		XrayImageURL:    "https://cdn.example.com/xrays/a.png",
		Result:          result,
		ConfidenceScore: confidence,
		RiskLevel:       models.RiskLow,
		Symptoms:        datatypes.JSONMap{"q1": "yes", "q2": "yes", "q3": "no"},
		CreatedAt:       time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func sampleProfile() *models.Profile {
	age := 42
	return &models.Profile{
		ID:       uuid.New(),
		Role:     models.RolePatient,
		FullName: "Jane Tester",
		Age:      &age,
		Gender:   "Female",
		City:     "Lagos",
	}
}

func TestPopulationPointsDeterministic(t *testing.T) {
	x1, y1 := populationPoints()
	x2, y2 := populationPoints()

	require.Len(t, x1, populationSize)
	require.Len(t, y1, populationSize)
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)

	assert.InDelta(t, 5, x1[0], 1e-9)
	assert.InDelta(t, 95, x1[populationSize-1], 1e-9)
	for i, y := range y1 {
		assert.GreaterOrEqual(t, y, 0.0, "point %d below range", i)
		assert.LessOrEqual(t, y, 100.0, "point %d above range", i)
	}
}

func TestScatterPNG(t *testing.T) {
	img, err := scatterPNG(62.5, 91.0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", http.DetectContentType(img))
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(&fakeFetcher{data: samplePNG(t)})

	out, err := r.Render(sampleRecord(models.ResultPositive, 92.3), sampleProfile())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderNegativeResult(t *testing.T) {
	r := NewRenderer(&fakeFetcher{data: samplePNG(t)})

	out, err := r.Render(sampleRecord(models.ResultNegative, 85.5), sampleProfile())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderWithUnreachableImage(t *testing.T) {
	r := NewRenderer(&fakeFetcher{err: errors.New("timeout")})

	out, err := r.Render(sampleRecord(models.ResultPositive, 70), sampleProfile())
	require.NoError(t, err, "a missing radiograph must not fail the render")
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderWithUnsupportedImageBytes(t *testing.T) {
	r := NewRenderer(&fakeFetcher{data: []byte("<html>not an image</html>")})

	out, err := r.Render(sampleRecord(models.ResultNegative, 60), sampleProfile())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderSparseProfile(t *testing.T) {
	r := NewRenderer(&fakeFetcher{err: errors.New("gone")})
	profile := &models.Profile{
		ID:      uuid.New(),
		Role:    models.RolePatient,
		Account: models.Account{Email: "anon@example.com"},
	}

	out, err := r.Render(sampleRecord(models.ResultNegative, 50), profile)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestImageType(t *testing.T) {
	assert.Equal(t, "PNG", imageType(samplePNG(t)))
	assert.Equal(t, "JPG", imageType([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}))
	assert.Equal(t, "GIF", imageType([]byte("GIF89a\x00\x00")))
	assert.Equal(t, "", imageType([]byte("plain text")))
}

func TestHTTPImageFetcher(t *testing.T) {
	body := samplePNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := NewHTTPImageFetcher()
	got, err := f.Fetch(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = f.Fetch("")
	assert.Error(t, err)
}

func TestHTTPImageFetcherNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPImageFetcher()
	_, err := f.Fetch(srv.URL)
	assert.Error(t, err)
}
