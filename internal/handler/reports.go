package handler

import (
	"net/http"

	"prodtrack/internal/middleware"
	"prodtrack/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportingService }

func NewReportsHandler(svc service.ReportingService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// TargetVsProduction GET /v1/target-vs-production — the caller's own
// reconciliation, newest week first.
func (h *ReportsHandler) TargetVsProduction(c *gin.Context) {
	claims := middleware.GetClaims(c)
	rows, err := h.svc.Reconcile(c.Request.Context(), claims.UserIDUint(), service.WeekDescending)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// AdminSummary GET /v1/admin/summary/:id — one manager's reconciliation,
// oldest week first.
func (h *ReportsHandler) AdminSummary(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.svc.Reconcile(c.Request.Context(), userID, service.WeekAscending)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
