package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dealsense/buybox/internal/model"
)

// FirmIntelLookup handles POST /api/v1/firm-intel
func (h *Handler) FirmIntelLookup(c *gin.Context) {
	var req model.FirmIntelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.FirmName) == "" {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "firm_name must not be empty")
		return
	}
	if req.FallbackURL != "" {
		if err := h.Validate.Var(req.FallbackURL, "url"); err != nil {
			errorJSON(c, http.StatusBadRequest, CodeBadRequest, "fallback_url must be a valid URL")
			return
		}
	}

	intel, err := h.FirmIntel.Analyze(c.Request.Context(), req.FirmName, req.FallbackURL)
	if err != nil {
		errorJSON(c, http.StatusBadGateway, CodeNetworkError, "firm lookup failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, intel)
}
