package handler

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/internal/service"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

type exportService interface {
	ExportSummary(ctx context.Context, req dto.SummaryExportRequest) (*dto.ExportResponse, error)
	Certificate(ctx context.Context, claims *models.PassClaims, req dto.CertificateRequest) (*dto.ExportResponse, string, error)
	OpenDownload(token string) (*os.File, string, error)
}

// ExportHandler serves summary exports, certificates and signed downloads.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Summary godoc
// @Summary Export the live summary
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.SummaryExportRequest true "Format"
// @Success 201 {object} response.Envelope
// @Router /summary/export [post]
func (h *ExportHandler) Summary(c *gin.Context) {
	var req dto.SummaryExportRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.exports.ExportSummary(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	confirm(c, http.StatusCreated, result, service.MessageSummaryExported)
}

// Certificate godoc
// @Summary Issue the completion certificate
// @Tags Exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CertificateRequest true "Delivery"
// @Success 201 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /certificate [post]
func (h *ExportHandler) Certificate(c *gin.Context) {
	claims := middleware.PassFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "attendee pass required"))
		return
	}
	var req dto.CertificateRequest
	if !bindJSON(c, &req) {
		return
	}
	result, message, err := h.exports.Certificate(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	confirm(c, http.StatusCreated, result, message)
}

// Download godoc
// @Summary Download a stored export
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, name, err := h.exports.OpenDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export"))
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
	})
}
