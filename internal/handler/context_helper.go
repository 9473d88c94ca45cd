package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/middleware"
	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

// ok writes data together with whatever the meta middleware collected.
func ok(c *gin.Context, data interface{}, pagination *models.Pagination) {
	response.JSON(c, http.StatusOK, data, pagination, middleware.ExtractMeta(c))
}

// confirm writes data with the dashboard confirmation message in meta.
func confirm(c *gin.Context, status int, data interface{}, message string) {
	middleware.SetMeta(c, "message", message)
	response.JSON(c, status, data, nil, middleware.ExtractMeta(c))
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, key+" must be an integer"))
		return 0, false
	}
	return v, true
}
