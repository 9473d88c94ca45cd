package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/export"
	"github.com/noah-isme/workshop-hub-api/pkg/jobs"
	"github.com/noah-isme/workshop-hub-api/pkg/storage"
)

// JobExportCleanup is the queue job type that prunes expired export files.
const JobExportCleanup = "exports.cleanup"

// Export confirmation messages.
const (
	MessageSummaryExported      = "Summary exported successfully! Check your downloads folder."
	MessageCertificateDownload  = "Certificate downloaded successfully!"
	MessageCertificateEmailed   = "Certificate sent to your email successfully!"
	certificateDeliveryDownload = "download"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type summarySource interface {
	Workshop() models.Workshop
	State() models.LiveState
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportService renders summary exports and certificates, stores them and signs download links.
type ExportService struct {
	source    summarySource
	storage   fileStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(source summarySource, files fileStorage, signer *storage.SignedURLSigner, validate *validator.Validate, cfg ExportConfig, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = time.Hour
	}
	return &ExportService{
		source:    source,
		storage:   files,
		signer:    signer,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ExportSummary writes the live summary as CSV or PDF and returns a signed download link.
func (s *ExportService) ExportSummary(_ context.Context, req dto.SummaryExportRequest) (*dto.ExportResponse, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	exporter, err := export.ForFormat(req.Format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	workshop := s.source.Workshop()
	state := s.source.State()
	data := export.Dataset{Headers: []string{"#", "Point"}}
	for i, line := range state.Summary {
		data.Rows = append(data.Rows, map[string]string{"#": strconv.Itoa(i + 1), "Point": line})
	}
	payload, err := exporter.Render(data, workshop.Title+" - Live Summary")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render summary")
	}

	id := uuid.NewString()
	filename := path.Join("summary", fmt.Sprintf("summary_%s_%s.%s", s.now().UTC().Format("20060102_150405"), id[:8], exporter.Extension()))
	resp, err := s.store(id, filename, payload, true)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordExport("summary_" + req.Format)
	return resp, nil
}

// Certificate renders the completion certificate for the pass holder. Download delivery returns
// a signed link; email delivery stores the file and only confirms.
func (s *ExportService) Certificate(_ context.Context, claims *models.PassClaims, req dto.CertificateRequest) (*dto.ExportResponse, string, error) {
	if claims == nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "attendee pass required")
	}
	req.Delivery = strings.ToLower(strings.TrimSpace(req.Delivery))
	if req.Delivery == "" {
		req.Delivery = certificateDeliveryDownload
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "delivery must be download or email")
	}

	workshop := s.source.Workshop()
	id := uuid.NewString()
	payload, err := export.RenderCertificate(export.Certificate{
		AttendeeName: claims.FullName,
		Workshop:     workshop.Title,
		Instructor:   workshop.Instructor,
		Duration:     workshop.Duration,
		IssuedAt:     s.now().UTC(),
		SerialNumber: "WH-" + strings.ToUpper(id[:8]),
	})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
	}

	download := req.Delivery == certificateDeliveryDownload
	filename := path.Join("certificates", fmt.Sprintf("certificate_%s_%s.pdf", sanitizeFilename(claims.RegistrationID), id[:8]))
	resp, err := s.store(id, filename, payload, download)
	if err != nil {
		return nil, "", err
	}
	s.metrics.RecordExport("certificate_" + req.Delivery)
	if download {
		return resp, MessageCertificateDownload, nil
	}
	s.logger.Info("certificate queued for email", zap.String("registration_id", claims.RegistrationID), zap.String("email", claims.Email))
	return resp, MessageCertificateEmailed, nil
}

// OpenDownload resolves a signed token to the stored file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "download link is invalid or expired")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file not found")
	}
	return file, path.Base(relPath), nil
}

// Cleanup removes files older than the configured result TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	deleted, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(deleted)))
	}
	return deleted, nil
}

// Register binds the cleanup job.
func (s *ExportService) Register(mux *jobs.Mux) {
	mux.Handle(JobExportCleanup, func(context.Context, jobs.Job) error {
		_, err := s.Cleanup()
		return err
	})
}

func (s *ExportService) store(id, filename string, payload []byte, signed bool) (*dto.ExportResponse, error) {
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	resp := &dto.ExportResponse{ID: id, Filename: path.Base(relPath)}
	if !signed {
		return resp, nil
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	resp.DownloadURL = fmt.Sprintf("%s/downloads/%s", prefix, token)
	resp.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	return resp, nil
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 64 {
		return result[:64]
	}
	return result
}
