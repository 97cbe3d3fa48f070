package handler

import (
	"bytes"
	"net/http"

	"prodtrack/internal/apierror"
	"prodtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Targets GET /v1/export/targets
func (h *ExportHandler) Targets(c *gin.Context) {
	// Render into a buffer first so a failure becomes a clean JSON 500
	// instead of an error body appended to a partial CSV download.
	var buf bytes.Buffer
	if err := h.svc.WriteTargetsCSV(c.Request.Context(), &buf); err != nil {
		log.Error().Err(err).Msg("targets export failed")
		c.JSON(http.StatusInternalServerError, apierror.New("export failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename=weekly_targets.csv`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// Daily GET /v1/export/daily
func (h *ExportHandler) Daily(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.WriteProductionCSV(c.Request.Context(), &buf); err != nil {
		log.Error().Err(err).Msg("daily export failed")
		c.JSON(http.StatusInternalServerError, apierror.New("export failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename=daily_production.csv`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
