package handler

import (
	"net/http"

	"prodtrack/internal/dto"
	"prodtrack/internal/middleware"
	"prodtrack/internal/service"

	"github.com/gin-gonic/gin"
)

type VariantsHandler struct {
	svc    service.VariantService
	access service.AccessService
}

func NewVariantsHandler(svc service.VariantService, access service.AccessService) *VariantsHandler {
	return &VariantsHandler{svc: svc, access: access}
}

// ListResolved GET /v1/variants — the caller's allowed variants, used to
// populate choice lists.
func (h *VariantsHandler) ListResolved(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.access.ResolveVariants(c.Request.Context(), claims.UserIDUint(), claims.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List GET /v1/admin/variants — full catalog with display_order.
func (h *VariantsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create POST /v1/admin/variants
func (h *VariantsHandler) Create(c *gin.Context) {
	var req dto.CreateVariantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update PATCH /v1/admin/variants/:id
func (h *VariantsHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateVariantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/admin/variants/:id
func (h *VariantsHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetAccess GET /v1/admin/managers/:id/variant-access
func (h *VariantsHandler) GetAccess(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	ids, err := h.access.ListGrants(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccessResponse{VariantIDs: ids})
}

// PutAccess PUT /v1/admin/managers/:id/variant-access — replaces the full
// grant set; an empty list restores the unrestricted default.
func (h *VariantsHandler) PutAccess(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAccessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.access.ReplaceGrants(c.Request.Context(), userID, req.VariantIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccessResponse{VariantIDs: req.VariantIDs})
}
