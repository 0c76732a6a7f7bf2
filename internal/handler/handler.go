package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/dealsense/buybox/internal/repository"
	"github.com/dealsense/buybox/internal/service"
)

// Error codes surfaced to clients. Only bad_request ever escapes the
// parse path; upstream failures are absorbed by the local fallback.
const (
	CodeBadRequest     = "bad_request"
	CodeLLMUnavailable = "llm_unavailable"
	CodeTimeout        = "timeout"
	CodeNetworkError   = "network_error"
)

// Handler carries the wired services for all HTTP endpoints.
type Handler struct {
	Remote       *service.RemoteParser
	FirmIntel    *service.FirmIntelService
	Activity     *repository.ActivityLog
	Validate     *validator.Validate
	Logger       zerolog.Logger
	DefaultCount int
	MaxCount     int
}

// New creates the handler set.
func New(remote *service.RemoteParser, firmIntel *service.FirmIntelService, activity *repository.ActivityLog, logger zerolog.Logger, defaultCount, maxCount int) *Handler {
	return &Handler{
		Remote:       remote,
		FirmIntel:    firmIntel,
		Activity:     activity,
		Validate:     validator.New(),
		Logger:       logger,
		DefaultCount: defaultCount,
		MaxCount:     maxCount,
	}
}

// errorJSON writes the error envelope shared by all endpoints.
func errorJSON(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "buybox-engine",
	})
}
