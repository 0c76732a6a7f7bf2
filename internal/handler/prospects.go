package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealsense/buybox/internal/middleware"
	"github.com/dealsense/buybox/internal/model"
	"github.com/dealsense/buybox/internal/refine"
	"github.com/dealsense/buybox/internal/synth"
)

// Prospects handles POST /api/v1/prospects
func (h *Handler) Prospects(c *gin.Context) {
	var req model.SynthesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "invalid request: "+err.Error())
		return
	}

	count := req.Count
	if count <= 0 {
		count = h.DefaultCount
	}
	if count > h.MaxCount {
		count = h.MaxCount
	}

	start := time.Now()
	result := synth.Synthesize(req.Mandate, req.SeedText, count)
	took := time.Since(start).Milliseconds()

	generated := len(result.Prospects) + len(result.Qualified) + len(result.Booked)
	rid := middleware.GetRequestID(c)
	go func() {
		if err := h.Activity.LogSynthesis(context.Background(), rid, req.SeedText, count, generated, took); err != nil {
			h.Logger.Warn().Err(err).Msg("failed to log synthesis")
		}
	}()

	c.JSON(http.StatusOK, result)
}

// RefinePlan handles POST /api/v1/refine-plan
func (h *Handler) RefinePlan(c *gin.Context) {
	var req model.RefinePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "invalid request: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, refine.BuildPlan(req.Mandate))
}
