// Package report renders a screening record into the PDF artifact served by
// the download and email-report endpoints.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/respirex/respirex-backend/internal/models"
	"github.com/respirex/respirex-backend/internal/scoring"
)

// ErrGeneration reports a failed render. Callers get this error and no
// partial artifact.
var ErrGeneration = errors.New("report: generation failed")

type medication struct {
	name string
	dose string
	desc string
}

var positiveProtocol = struct {
	title string
	note  string
	meds  []medication
}{
	title: "Suggested Clinical Protocol",
	note:  "Standard First-Line Regimen (Requires Prescription)",
	meds: []medication{
		{"Isoniazid (H)", "5 mg/kg", "Primary antibiotic for treatment"},
		{"Rifampicin (R)", "10 mg/kg", "Broad-spectrum antibiotic"},
		{"Pyrazinamide (Z)", "25 mg/kg", "Sterilizing agent"},
		{"Ethambutol (E)", "15 mg/kg", "Bacteriostatic agent"},
	},
}

var negativeProtocol = struct {
	title string
	note  string
	meds  []medication
}{
	title: "Preventive Recommendations",
	note:  "Nutritional Support for Respiratory Health",
	meds: []medication{
		{"Vitamin D3", "1000 IU", "Immune modulation support"},
		{"Vitamin C", "500 mg", "Antioxidant cellular protection"},
		{"Zinc Gluconate", "50 mg", "Immune defense enhancement"},
	},
}

// Renderer assembles the report document. The fetcher is injected so tests
// can render without network access.
type Renderer struct {
	fetch ImageFetcher
}

func NewRenderer(fetch ImageFetcher) *Renderer {
	return &Renderer{fetch: fetch}
}

// Render produces the PDF for a record. The risk tier is recomputed from
// (result, confidence); the stored tier is ignored.
func (r *Renderer) Render(rec *models.ScreeningRecord, patient *models.Profile) ([]byte, error) {
	modelConf := rec.ConfidenceScore
	symptomScore := scoring.SymptomScore(rec.Symptoms)
	composite := scoring.CompositeScore(modelConf, symptomScore)
	risk := scoring.DeriveRisk(rec.Result, modelConf)
	isPositive := rec.Result == models.ResultPositive

	statusText := "NO ABNORMALITIES DETECTED"
	if isPositive {
		statusText = "POSITIVE FOR ABNORMALITIES"
	}

	chartPNG, err := scatterPNG(symptomScore, modelConf)
	if err != nil {
		return nil, fmt.Errorf("%w: scatter render: %v", ErrGeneration, err)
	}

	// Best-effort: render a placeholder when the source image is unreachable.
	xrayBytes, xrayErr := r.fetch.Fetch(rec.XrayImageURL)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 30

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(52, 152, 219)
	pdf.CellFormat(contentWidth, 10, "RespireX Medical AI", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 116, 139)
	meta := fmt.Sprintf("Report ID: %s  |  Date: %s", rec.ID, rec.CreatedAt.Format("January 2, 2006"))
	pdf.CellFormat(contentWidth, 5, meta, "", 1, "C", false, 0, "")
	pdf.SetDrawColor(52, 152, 219)
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY()+2, pageWidth-15, pdf.GetY()+2)
	pdf.Ln(8)

	// Demographics
	r.sectionLabel(pdf, "Patient Demographics")
	ageGender := "--"
	if patient.Age != nil || patient.Gender != "" {
		age := "--"
		if patient.Age != nil {
			age = fmt.Sprintf("%d", *patient.Age)
		}
		gender := patient.Gender
		if gender == "" {
			gender = "--"
		}
		ageGender = age + " / " + gender
	}
	location := patient.City
	if location == "" {
		location = "--"
	}
	cells := []struct {
		label string
		value string
		width float64
	}{
		{"PATIENT NAME", patient.DisplayName(), contentWidth * 0.32},
		{"AGE / GENDER", ageGender, contentWidth * 0.20},
		{"PATIENT ID", patient.ID.String()[:8], contentWidth * 0.20},
		{"LOCATION", location, contentWidth * 0.28},
	}
	x, y := pdf.GetX(), pdf.GetY()
	for _, cell := range cells {
		pdf.SetXY(x, y)
		pdf.SetDrawColor(226, 232, 240)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, y, cell.width, 14, "D")
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 116, 139)
		pdf.SetXY(x+2, y+2)
		pdf.CellFormat(cell.width-4, 3, cell.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(15, 23, 42)
		pdf.SetXY(x+2, y+7)
		pdf.CellFormat(cell.width-4, 5, cell.value, "", 0, "L", false, 0, "")
		x += cell.width
	}
	pdf.SetXY(15, y+18)

	// Diagnostic banner
	r.sectionLabel(pdf, "Diagnostic Assessment")
	bannerY := pdf.GetY()
	pdf.SetFillColor(239, 246, 255)
	pdf.SetDrawColor(96, 165, 250)
	pdf.Rect(15, bannerY, contentWidth, 16, "FD")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(52, 152, 219)
	pdf.SetXY(15, bannerY+2)
	pdf.CellFormat(contentWidth, 6, statusText, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.SetX(15)
	pdf.CellFormat(contentWidth, 5,
		fmt.Sprintf("Risk Classification: %s  |  Confidence: %.1f%%", risk, composite),
		"", 1, "C", false, 0, "")
	pdf.SetY(bannerY + 20)

	// Radiograph and comparative chart side by side
	r.sectionLabel(pdf, "Radiographic & Comparative Analysis")
	boxWidth := (contentWidth - 4) / 2
	boxHeight := 60.0
	rowY := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetXY(15, rowY)
	pdf.CellFormat(boxWidth, 4, "ANALYZED RADIOGRAPH", "", 0, "L", false, 0, "")
	pdf.SetXY(15+boxWidth+4, rowY)
	pdf.CellFormat(boxWidth, 4, "POPULATION RISK ANALYSIS", "", 1, "L", false, 0, "")
	rowY += 5

	pdf.SetDrawColor(226, 232, 240)
	pdf.Rect(15, rowY, boxWidth, boxHeight, "D")
	pdf.Rect(15+boxWidth+4, rowY, boxWidth, boxHeight, "D")

	if xrayErr == nil {
		if imgType := imageType(xrayBytes); imgType != "" {
			opts := fpdf.ImageOptions{ImageType: imgType}
			pdf.RegisterImageOptionsReader("xray", opts, bytes.NewReader(xrayBytes))
			pdf.ImageOptions("xray", 17, rowY+2, boxWidth-4, boxHeight-4, false, opts, 0, "")
		} else {
			xrayErr = errors.New("unsupported image format")
		}
	}
	if xrayErr != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(203, 213, 225)
		pdf.SetXY(15, rowY+boxHeight/2-3)
		pdf.CellFormat(boxWidth, 6, "Image Not Available", "", 0, "C", false, 0, "")
	}

	chartOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scatter", chartOpts, bytes.NewReader(chartPNG))
	pdf.ImageOptions("scatter", 15+boxWidth+6, rowY+2, boxWidth-4, 0, false, chartOpts, 0, "")

	pdf.SetXY(15, rowY+boxHeight+6)

	// Metrics table
	r.sectionLabel(pdf, "Detailed Metrics")
	r.metricsRow(pdf, contentWidth, true, "Analysis Metric", "Score", "Clinical Significance", false)
	r.metricsRow(pdf, contentWidth, false, "AI Model Prediction", fmt.Sprintf("%.1f%%", modelConf), "Computer-Aided Detection (CAD) Score", false)
	r.metricsRow(pdf, contentWidth, false, "Symptom Correlation", fmt.Sprintf("%.1f%%", symptomScore), "Self-reported symptom severity index", false)
	r.metricsRow(pdf, contentWidth, false, "Composite Score", fmt.Sprintf("%.1f%%", composite), "Weighted diagnostic probability", true)
	pdf.Ln(6)

	// Medication protocol
	protocol := negativeProtocol
	if isPositive {
		protocol = positiveProtocol
	}
	r.sectionLabel(pdf, protocol.title)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(contentWidth, 4, "Note: "+protocol.note, "", 1, "L", false, 0, "")
	r.medsRow(pdf, contentWidth, true, "Medication", "Dosage", "Indication")
	for _, med := range protocol.meds {
		r.medsRow(pdf, contentWidth, false, med.name, med.dose, med.desc)
	}

	// Disclaimer and footer
	pdf.Ln(10)
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetLineWidth(0.2)
	pdf.Line(15, pdf.GetY(), pageWidth-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.MultiCell(contentWidth, 3.5,
		"DISCLAIMER: This report is generated by the RespireX Artificial Intelligence system. "+
			"It is intended for screening purposes only and DOES NOT constitute a final medical diagnosis.",
		"", "C", false)
	pdf.Ln(2)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(contentWidth, 3.5, "(c) 2025 RespireX. All rights reserved.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) sectionLabel(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(0, 5, strings.ToUpper(text), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (r *Renderer) metricsRow(pdf *fpdf.Fpdf, width float64, header bool, metric, score, meaning string, highlight bool) {
	if header {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetFillColor(248, 250, 252)
		pdf.SetTextColor(100, 116, 139)
	} else {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetFillColor(255, 255, 255)
		pdf.SetTextColor(51, 65, 85)
	}
	pdf.SetDrawColor(226, 232, 240)
	pdf.CellFormat(width*0.4, 7, metric, "1", 0, "L", header, 0, "")
	if highlight {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(52, 152, 219)
	}
	pdf.CellFormat(width*0.2, 7, score, "1", 0, "L", header, 0, "")
	if highlight {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(51, 65, 85)
	}
	pdf.CellFormat(width*0.4, 7, meaning, "1", 1, "L", header, 0, "")
}

func (r *Renderer) medsRow(pdf *fpdf.Fpdf, width float64, header bool, name, dose, desc string) {
	if header {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetFillColor(248, 250, 252)
		pdf.SetTextColor(71, 85, 105)
	} else {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetFillColor(255, 255, 255)
		pdf.SetTextColor(51, 65, 85)
	}
	pdf.SetDrawColor(226, 232, 240)
	pdf.CellFormat(width*0.4, 7, name, "1", 0, "L", header, 0, "")
	pdf.CellFormat(width*0.2, 7, dose, "1", 0, "L", header, 0, "")
	pdf.CellFormat(width*0.4, 7, desc, "1", 1, "L", header, 0, "")
}

// imageType maps sniffed content to the fpdf image type tag.
func imageType(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}
	return ""
}
