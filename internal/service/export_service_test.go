package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/dataset"
	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/internal/repository"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/jobs"
	"github.com/noah-isme/workshop-hub-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) *ExportService {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	return NewExportService(repository.NewWorkshopStore(ds), files, signer, nil, ExportConfig{APIPrefix: "/api/v1/", ResultTTL: time.Hour}, nil, nil)
}

func tokenFromURL(t *testing.T, url string) string {
	t.Helper()
	const prefix = "/api/v1/downloads/"
	require.True(t, strings.HasPrefix(url, prefix), url)
	return strings.TrimPrefix(url, prefix)
}

func TestExportSummaryCSVRoundTrip(t *testing.T) {
	svc := newExportServiceForTest(t)

	resp, err := svc.ExportSummary(context.Background(), dto.SummaryExportRequest{Format: "CSV"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.Filename, ".csv"))
	assert.NotEmpty(t, resp.ExpiresAt)

	file, name, err := svc.OpenDownload(tokenFromURL(t, resp.DownloadURL))
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, resp.Filename, name)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(body), "#,Point")
}

func TestExportSummaryPDF(t *testing.T) {
	svc := newExportServiceForTest(t)
	resp, err := svc.ExportSummary(context.Background(), dto.SummaryExportRequest{Format: "pdf"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.Filename, ".pdf"))
}

func TestExportSummaryRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(t)
	_, err := svc.ExportSummary(context.Background(), dto.SummaryExportRequest{Format: "xlsx"})
	requireCode(t, err, appErrors.ErrValidation.Code)
}

func TestCertificateRequiresPass(t *testing.T) {
	svc := newExportServiceForTest(t)
	_, _, err := svc.Certificate(context.Background(), nil, dto.CertificateRequest{Delivery: "download"})
	requireCode(t, err, appErrors.ErrUnauthorized.Code)
}

func TestCertificateDeliveries(t *testing.T) {
	svc := newExportServiceForTest(t)
	claims := &models.PassClaims{RegistrationID: "reg-1", Email: "ada@example.com", FullName: "Ada Lovelace"}

	resp, msg, err := svc.Certificate(context.Background(), claims, dto.CertificateRequest{Delivery: "download"})
	require.NoError(t, err)
	assert.Equal(t, "Certificate downloaded successfully!", msg)
	assert.NotEmpty(t, resp.DownloadURL)

	resp, msg, err = svc.Certificate(context.Background(), claims, dto.CertificateRequest{Delivery: "email"})
	require.NoError(t, err)
	assert.Equal(t, "Certificate sent to your email successfully!", msg)
	assert.Empty(t, resp.DownloadURL)

	_, _, err = svc.Certificate(context.Background(), claims, dto.CertificateRequest{Delivery: "fax"})
	requireCode(t, err, appErrors.ErrValidation.Code)
}

func TestOpenDownloadRejectsTamperedToken(t *testing.T) {
	svc := newExportServiceForTest(t)
	resp, err := svc.ExportSummary(context.Background(), dto.SummaryExportRequest{Format: "csv"})
	require.NoError(t, err)
	token := tokenFromURL(t, resp.DownloadURL) + "00"
	_, _, err = svc.OpenDownload(token)
	requireCode(t, err, appErrors.ErrNotFound.Code)
}

func TestExportCleanupJob(t *testing.T) {
	svc := newExportServiceForTest(t)
	_, err := svc.ExportSummary(context.Background(), dto.SummaryExportRequest{Format: "csv"})
	require.NoError(t, err)

	mux := jobs.NewMux()
	svc.Register(mux)
	require.NoError(t, mux.Dispatch(context.Background(), jobs.Job{Type: JobExportCleanup}))

	svc.cfg.ResultTTL = time.Nanosecond
	time.Sleep(5 * time.Millisecond)
	deleted, err := svc.Cleanup()
	require.NoError(t, err)
	assert.Len(t, deleted, 1)
}
