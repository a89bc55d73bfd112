package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/services"
)

type MeasurementController struct {
	svc  *services.MeasurementService
	errs *apperrors.Handler
}

func NewMeasurementController(svc *services.MeasurementService, errs *apperrors.Handler) *MeasurementController {
	return &MeasurementController{svc: svc, errs: errs}
}

// Create handles POST /api/measurements.
func (h *MeasurementController) Create(c *gin.Context) {
	var input services.MeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	m, err := h.svc.Add(c.Request.Context(), input)
	if err != nil {
		renderError(c, h.errs, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// List handles GET /api/measurements?since=YYYY-MM-DD&until=YYYY-MM-DD.
func (h *MeasurementController) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Query("since"), c.Query("until"))
	if err != nil {
		renderError(c, h.errs, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
