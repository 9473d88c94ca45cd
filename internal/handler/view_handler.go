package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/dto"
	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

type viewService interface {
	Current() models.View
	Select(ctx context.Context, view models.View) (dto.RenderedView, bool, error)
	Render(ctx context.Context, view models.View) (dto.RenderedView, bool, error)
	RenderCurrent(ctx context.Context) (dto.RenderedView, bool, error)
	SelectModule(ctx context.Context, id int) (dto.ModuleDetail, error)
	Participants(page, size int) ([]dto.ParticipantRow, *models.Pagination)
	Subscribe() (<-chan dto.RenderEvent, func())
}

// ViewHandler serves rendered views, roster pages and the render event stream.
type ViewHandler struct {
	views     viewService
	heartbeat time.Duration
}

// NewViewHandler constructs the handler.
func NewViewHandler(views viewService) *ViewHandler {
	return &ViewHandler{views: views, heartbeat: 15 * time.Second}
}

// Current godoc
// @Summary Render the current view
// @Tags Views
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /views/current [get]
func (h *ViewHandler) Current(c *gin.Context) {
	rendered, hit, err := h.views.RenderCurrent(c.Request.Context())
	h.respond(c, rendered, hit, err)
}

// Select godoc
// @Summary Switch the current view
// @Tags Views
// @Accept json
// @Produce json
// @Param payload body dto.SelectViewRequest true "View"
// @Success 200 {object} response.Envelope
// @Router /views/current [put]
func (h *ViewHandler) Select(c *gin.Context) {
	var req dto.SelectViewRequest
	if !bindJSON(c, &req) {
		return
	}
	rendered, hit, err := h.views.Select(c.Request.Context(), req.View)
	h.respond(c, rendered, hit, err)
}

// Show godoc
// @Summary Render a named view
// @Tags Views
// @Produce json
// @Param view path string true "View name"
// @Success 200 {object} response.Envelope
// @Router /views/{view} [get]
func (h *ViewHandler) Show(c *gin.Context) {
	rendered, hit, err := h.views.Render(c.Request.Context(), models.View(c.Param("view")))
	h.respond(c, rendered, hit, err)
}

func (h *ViewHandler) respond(c *gin.Context, rendered dto.RenderedView, hit bool, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	ok(c, rendered, nil)
}

// Participants godoc
// @Summary Paginated participant roster
// @Tags Views
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /participants [get]
func (h *ViewHandler) Participants(c *gin.Context) {
	page, valid := queryInt(c, "page", 1)
	if !valid {
		return
	}
	size, valid := queryInt(c, "page_size", 0)
	if !valid {
		return
	}
	rows, pagination := h.views.Participants(page, size)
	ok(c, rows, pagination)
}

// SelectModule godoc
// @Summary Make a module current
// @Tags Views
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} response.Envelope
// @Router /modules/{id}/select [post]
func (h *ViewHandler) SelectModule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "module id must be an integer"))
		return
	}
	detail, err := h.views.SelectModule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok(c, detail, nil)
}

// Events godoc
// @Summary Server-sent render events
// @Tags Views
// @Produce text/event-stream
// @Router /events [get]
func (h *ViewHandler) Events(c *gin.Context) {
	events, unsubscribe := h.views.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ready", dto.RenderEvent{View: h.views.Current(), Reason: "subscribed"})
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, open := <-events:
			if !open {
				return
			}
			c.SSEvent("render", evt)
		case ts := <-heartbeat.C:
			c.SSEvent("ping", ts.Unix())
		}
		c.Writer.Flush()
	}
}
