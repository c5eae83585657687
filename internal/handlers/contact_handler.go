package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casacomune/community-api/internal/models"
	"github.com/casacomune/community-api/internal/services"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/v1/contact. Rate limiting runs in
// middleware before this handler; everything else in the admission
// pipeline happens inside the service.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var sub models.ContactSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request", err.Error(), err)
		return
	}

	resp, err := h.service.SubmitContactForm(c.Request.Context(), &sub)
	if err != nil {
		// Never leak internal detail to the client
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
