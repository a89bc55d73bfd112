package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/services"
)

const defaultInsightDays = 7

type InsightController struct {
	svc  *services.InsightService
	errs *apperrors.Handler
}

func NewInsightController(svc *services.InsightService, errs *apperrors.Handler) *InsightController {
	return &InsightController{svc: svc, errs: errs}
}

// Get handles GET /api/insights?days=N.
func (h *InsightController) Get(c *gin.Context) {
	days := defaultInsightDays
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return
		}
		days = parsed
	}

	out, err := h.svc.Insights(c.Request.Context(), days)
	if err != nil {
		renderError(c, h.errs, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
