package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/casacomune/community-api/internal/services"
	apperrors "github.com/casacomune/community-api/pkg/errors"
)

type AdminInquiriesHandler struct {
	service services.InquiryAdminServiceInterface
}

func NewAdminInquiriesHandler(service services.InquiryAdminServiceInterface) *AdminInquiriesHandler {
	return &AdminInquiriesHandler{service: service}
}

// ListInquiries handles GET /api/v1/admin/inquiries
func (h *AdminInquiriesHandler) ListInquiries(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	inquiries, err := h.service.ListInquiries(c.Request.Context(), status, limit, offset)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "count": len(inquiries)})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles POST /api/v1/admin/inquiries/:referenceId/status
func (h *AdminInquiriesHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", err.Error(), err)
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), c.Param("referenceId"), req.Status)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, err.Error(), err)
		case apperrors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "Inquiry not found", err)
		default:
			respondError(c, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
