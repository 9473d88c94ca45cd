package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

type fakeExports struct {
	path string
}

func (f *fakeExports) ExportSummary(_ context.Context, req dto.SummaryExportRequest) (*dto.ExportResponse, error) {
	return &dto.ExportResponse{ID: "exp-1", Filename: "summary." + req.Format, DownloadURL: "/api/v1/downloads/tok"}, nil
}

func (f *fakeExports) Certificate(_ context.Context, _ *models.PassClaims, req dto.CertificateRequest) (*dto.ExportResponse, string, error) {
	if req.Delivery == "email" {
		return &dto.ExportResponse{ID: "cert-1"}, "Certificate sent to your email successfully!", nil
	}
	return &dto.ExportResponse{ID: "cert-1"}, "Certificate downloaded successfully!", nil
}

func (f *fakeExports) OpenDownload(token string) (*os.File, string, error) {
	if token != "good" {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "download link is invalid or expired")
	}
	file, err := os.Open(f.path)
	return file, filepath.Base(f.path), err
}

func TestExportHandlerSummary(t *testing.T) {
	h := NewExportHandler(&fakeExports{})
	c, rec := newTestContext(http.MethodPost, "/summary/export", map[string]string{"format": "csv"})
	h.Summary(c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Summary exported successfully! Check your downloads folder.", decode(t, rec).Meta["message"])
}

func TestExportHandlerCertificateNeedsPass(t *testing.T) {
	h := NewExportHandler(&fakeExports{})

	c, rec := newTestContext(http.MethodPost, "/certificate", map[string]string{"delivery": "email"})
	h.Certificate(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newTestContext(http.MethodPost, "/certificate", map[string]string{"delivery": "email"})
	c.Set(middleware.ContextPassKey, &models.PassClaims{RegistrationID: "reg-1"})
	h.Certificate(c)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Certificate sent to your email successfully!", decode(t, rec).Meta["message"])
}

func TestExportHandlerDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, os.WriteFile(path, []byte("#,Point\n1,hello\n"), 0o644))
	h := NewExportHandler(&fakeExports{path: path})

	c, rec := newTestContext(http.MethodGet, "/downloads/good", nil)
	c.Params = gin.Params{{Key: "token", Value: "good"}}
	h.Download(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#,Point\n1,hello\n", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "summary.csv")

	c, rec = newTestContext(http.MethodGet, "/downloads/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	h.Download(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
