package handler

import (
	"net/http"
	"strconv"

	"prodtrack/internal/dto"
	"prodtrack/internal/middleware"
	"prodtrack/internal/model"
	"prodtrack/internal/service"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct{ svc service.TrackingService }

func NewTrackingHandler(svc service.TrackingService) *TrackingHandler {
	return &TrackingHandler{svc: svc}
}

// listSubject returns whose records a list endpoint should read: admins may
// inspect another user via ?user_id, everyone else reads their own.
func listSubject(c *gin.Context) uint {
	claims := middleware.GetClaims(c)
	if claims.Role == model.RoleAdmin {
		if raw := c.Query("user_id"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
				return uint(id)
			}
		}
	}
	return claims.UserIDUint()
}

// CreateTarget POST /v1/weekly-targets
func (h *TrackingHandler) CreateTarget(c *gin.Context) {
	var req dto.RecordTargetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RecordWeeklyTarget(c.Request.Context(), claims.UserIDUint(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTargets GET /v1/weekly-targets
func (h *TrackingHandler) ListTargets(c *gin.Context) {
	resp, err := h.svc.ListTargets(c.Request.Context(), listSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMostRecentTarget DELETE /v1/weekly-targets/most-recent
func (h *TrackingHandler) DeleteMostRecentTarget(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.DeleteMostRecent(c.Request.Context(), service.RecordKindTarget, claims.UserIDUint()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CreateProduction POST /v1/daily-production
func (h *TrackingHandler) CreateProduction(c *gin.Context) {
	var req dto.RecordProductionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RecordDailyProduction(c.Request.Context(), claims.UserIDUint(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListProduction GET /v1/daily-production
func (h *TrackingHandler) ListProduction(c *gin.Context) {
	resp, err := h.svc.ListProduction(c.Request.Context(), listSubject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMostRecentProduction DELETE /v1/daily-production/most-recent
func (h *TrackingHandler) DeleteMostRecentProduction(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.DeleteMostRecent(c.Request.Context(), service.RecordKindProduction, claims.UserIDUint()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
