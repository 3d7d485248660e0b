package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/respirex/respirex-backend/internal/dto"
	"github.com/respirex/respirex-backend/internal/mail"
	"github.com/respirex/respirex-backend/internal/ml"
	"github.com/respirex/respirex-backend/internal/models"
	"github.com/respirex/respirex-backend/internal/report"
	"github.com/respirex/respirex-backend/internal/scoring"
	"github.com/respirex/respirex-backend/internal/storage"
)

type ScreeningService struct {
	db           *gorm.DB
	uploader     storage.Uploader
	classifier   *ml.Classifier
	renderer     *report.Renderer
	mailer       mail.Sender
	dashboardURL string
}

func NewScreeningService(
	db *gorm.DB,
	uploader storage.Uploader,
	classifier *ml.Classifier,
	renderer *report.Renderer,
	mailer mail.Sender,
	dashboardURL string,
) *ScreeningService {
	return &ScreeningService{
		db:           db,
		uploader:     uploader,
		classifier:   classifier,
		renderer:     renderer,
		mailer:       mailer,
		dashboardURL: dashboardURL,
	}
}

// Predict runs the full screening pipeline: classify, store the image, derive
// the risk tier and persist the record. The result notification afterwards is
// best-effort; its failure never fails the prediction.
func (s *ScreeningService) Predict(ctx context.Context, patient *models.Profile, imageBytes []byte, contentType, symptomsJSON string) (*models.ScreeningRecord, error) {
	symptoms := datatypes.JSONMap{}
	if symptomsJSON != "" {
		if err := json.Unmarshal([]byte(symptomsJSON), &symptoms); err != nil {
			return nil, fmt.Errorf("%w: symptoms is not valid JSON", ErrValidation)
		}
	}

	prediction, err := s.classifier.Classify(ctx, imageBytes)
	if errors.Is(err, ml.ErrImageDecode) {
		// Undecodable uploads degrade to the placeholder result instead of
		// failing the screening.
		slog.Warn("image decode failed, serving placeholder result",
			"error", err, "patient_id", patient.ID, "action", "predict")
		prediction, err = ml.FallbackPrediction(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	imageURL, err := s.uploader.Upload(ctx, imageBytes, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: image upload: %v", ErrUpstream, err)
	}

	record := &models.ScreeningRecord{
		PatientID:       patient.ID,
		XrayImageURL:    imageURL,
		Result:          prediction.Result,
		ConfidenceScore: prediction.Confidence,
		RiskLevel:       scoring.DeriveRisk(prediction.Result, prediction.Confidence),
		Symptoms:        symptoms,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	record.Patient = *patient

	s.notifyResult(ctx, record, patient)

	return record, nil
}

// notifyResult emails the screening outcome with the report attached.
// Failures are logged and swallowed; the record is already persisted.
func (s *ScreeningService) notifyResult(ctx context.Context, record *models.ScreeningRecord, patient *models.Profile) {
	email := patient.Account.Email
	if email == "" {
		return
	}

	pdfBytes, err := s.renderer.Render(record, patient)
	if err != nil {
		slog.Error("result notification skipped: report render failed",
			"error", err, "record_id", record.ID, "action", "notify_result")
		return
	}

	risk := scoring.DeriveRisk(record.Result, record.ConfidenceScore)
	msg := mail.Message{
		Subject: mail.ScreeningResultSubject,
		To:      []string{email},
		HTML: mail.ScreeningResultHTML(
			patient.DisplayName(),
			record.CreatedAt.Format("January 2, 2006"),
			risk,
			record.ConfidenceScore,
			s.dashboardURL,
		),
		Attachment:     pdfBytes,
		AttachmentName: "RespireX_Report.pdf",
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.Error("result notification failed",
			"error", err, "record_id", record.ID, "action", "notify_result")
	}
}

// History returns the caller's records, newest first.
func (s *ScreeningService) History(patientID uuid.UUID) ([]models.ScreeningRecord, error) {
	var records []models.ScreeningRecord
	err := s.db.Preload("Patient.Account").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// Dashboard aggregates all records for doctors, optionally filtered by the
// patient's state ("all" or empty disables the filter).
func (s *ScreeningService) Dashboard(state string) (*dto.DashboardResponse, error) {
	q := s.db.Preload("Patient.Account").
		Model(&models.ScreeningRecord{}).
		Order("screening_records.created_at DESC")
	if state != "" && state != "all" {
		q = q.Joins("JOIN profiles ON profiles.id = screening_records.patient_id").
			Where("LOWER(profiles.state) = LOWER(?)", state)
	}

	var records []models.ScreeningRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	stats := dto.DashboardStats{Total: len(records)}
	for i := range records {
		if records[i].Result == models.ResultPositive {
			stats.Positive++
		} else {
			stats.Negative++
		}
	}

	return &dto.DashboardResponse{
		Stats:   stats,
		Records: dto.NewScreeningRecordResponses(records),
	}, nil
}

// PublicStats serves the unauthenticated aggregate counters.
func (s *ScreeningService) PublicStats() (*dto.PublicStatsResponse, error) {
	var out dto.PublicStatsResponse
	if err := s.db.Model(&models.ScreeningRecord{}).Count(&out.TotalScreenings).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.ScreeningRecord{}).
		Where("result = ?", models.ResultPositive).
		Count(&out.Positive).Error; err != nil {
		return nil, err
	}
	out.Negative = out.TotalScreenings - out.Positive
	return &out, nil
}

// GetRecord loads one record with its patient, enforcing visibility: patients
// see only their own records, doctors see all.
func (s *ScreeningService) GetRecord(id uuid.UUID, caller *models.Profile) (*models.ScreeningRecord, error) {
	var record models.ScreeningRecord
	err := s.db.Preload("Patient.Account").First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if caller.Role != models.RoleDoctor && record.PatientID != caller.ID {
		return nil, ErrPermissionDenied
	}
	return &record, nil
}

// RenderReport produces the PDF artifact for a record.
func (s *ScreeningService) RenderReport(record *models.ScreeningRecord) ([]byte, error) {
	return s.renderer.Render(record, &record.Patient)
}

// EmailReport renders the record's report and emails it to the recipient.
// This is the explicit email action: failures surface to the caller.
func (s *ScreeningService) EmailReport(ctx context.Context, record *models.ScreeningRecord, recipient string) error {
	if recipient == "" {
		return fmt.Errorf("%w: caller has no email address", ErrValidation)
	}

	pdfBytes, err := s.renderer.Render(record, &record.Patient)
	if err != nil {
		return err
	}

	risk := scoring.DeriveRisk(record.Result, record.ConfidenceScore)
	msg := mail.Message{
		Subject: mail.ScreeningResultSubject,
		To:      []string{recipient},
		HTML: mail.ScreeningResultHTML(
			record.Patient.DisplayName(),
			record.CreatedAt.Format("January 2, 2006"),
			risk,
			record.ConfidenceScore,
			s.dashboardURL,
		),
		Attachment:     pdfBytes,
		AttachmentName: "RespireX_Report.pdf",
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
