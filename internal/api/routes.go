package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/logger"
	"github.com/theroslabs/vitals-tracker/internal/services"
)

// SetupRouter wires the HTTP API.
func SetupRouter(measurements *services.MeasurementService, insights *services.InsightService) *gin.Engine {
	r := gin.Default()

	errs := apperrors.NewHandler(logger.GetLogger())
	mc := NewMeasurementController(measurements, errs)
	ic := NewInsightController(insights, errs)

	api := r.Group("/api")
	{
		api.POST("/measurements", mc.Create)
		api.GET("/measurements", mc.List)
		api.GET("/insights", ic.Get)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// renderError logs err and maps the error taxonomy onto HTTP statuses:
// validation errors reject the request, everything else is a server
// failure. Internal detail stays in the log, not the response.
func renderError(c *gin.Context, errs *apperrors.Handler, err error) {
	errs.Handle(c.Request.Context(), err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation {
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
