package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	"github.com/noah-isme/workshop-hub-api/internal/service"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

type registrationService interface {
	State() models.RegistrationState
	UpdateField(ctx context.Context, name, value string) (models.RegistrationState, error)
	BlurField(ctx context.Context, name string) (models.RegistrationState, error)
	Next(ctx context.Context) (models.RegistrationState, error)
	Back(ctx context.Context) (models.RegistrationState, error)
	Submit(ctx context.Context) (*dto.SubmitRegistrationResponse, error)
	ResendCode() string
}

// RegistrationHandler exposes the registration wizard.
type RegistrationHandler struct {
	wizard registrationService
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(wizard registrationService) *RegistrationHandler {
	return &RegistrationHandler{wizard: wizard}
}

// State godoc
// @Summary Wizard state
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration [get]
func (h *RegistrationHandler) State(c *gin.Context) {
	ok(c, h.wizard.State(), nil)
}

// UpdateField godoc
// @Summary Set a draft field value
// @Tags Registration
// @Accept json
// @Produce json
// @Param field path string true "Field name"
// @Param payload body dto.FieldValueRequest true "Value"
// @Success 200 {object} response.Envelope
// @Router /registration/fields/{field} [put]
func (h *RegistrationHandler) UpdateField(c *gin.Context) {
	var req dto.FieldValueRequest
	if !bindJSON(c, &req) {
		return
	}
	state, err := h.wizard.UpdateField(c.Request.Context(), c.Param("field"), req.Value)
	h.respondState(c, state, err)
}

// BlurField godoc
// @Summary Validate one field
// @Tags Registration
// @Produce json
// @Param field path string true "Field name"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /registration/fields/{field}/blur [post]
func (h *RegistrationHandler) BlurField(c *gin.Context) {
	state, err := h.wizard.BlurField(c.Request.Context(), c.Param("field"))
	h.respondState(c, state, err)
}

// Next godoc
// @Summary Advance to the next step
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /registration/next [post]
func (h *RegistrationHandler) Next(c *gin.Context) {
	state, err := h.wizard.Next(c.Request.Context())
	h.respondState(c, state, err)
}

// Back godoc
// @Summary Return to the previous step
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /registration/back [post]
func (h *RegistrationHandler) Back(c *gin.Context) {
	state, err := h.wizard.Back(c.Request.Context())
	h.respondState(c, state, err)
}

// Submit godoc
// @Summary Submit the registration
// @Tags Registration
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /registration/submit [post]
func (h *RegistrationHandler) Submit(c *gin.Context) {
	result, err := h.wizard.Submit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	confirm(c, http.StatusCreated, result, service.MessageRegistered)
}

// ResendCode godoc
// @Summary Resend the verification code
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/resend-code [post]
func (h *RegistrationHandler) ResendCode(c *gin.Context) {
	message := h.wizard.ResendCode()
	confirm(c, http.StatusOK, h.wizard.State(), message)
}

func (h *RegistrationHandler) respondState(c *gin.Context, state models.RegistrationState, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, state, nil)
}
