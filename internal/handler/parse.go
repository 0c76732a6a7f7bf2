package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealsense/buybox/internal/middleware"
	"github.com/dealsense/buybox/internal/model"
)

// Parse handles POST /api/v1/parse
func (h *Handler) Parse(c *gin.Context) {
	var req model.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "text must not be empty")
		return
	}

	start := time.Now()
	mandate := h.Remote.Parse(c.Request.Context(), req.Text)
	took := time.Since(start).Milliseconds()

	rid := middleware.GetRequestID(c)
	go func() {
		if err := h.Activity.LogParse(context.Background(), rid, req.Text, mandate, "merged", took); err != nil {
			h.Logger.Warn().Err(err).Msg("failed to log parse")
		}
	}()

	c.JSON(http.StatusOK, mandate)
}

// ParseStream handles POST /api/v1/parse/stream - SSE streaming parse.
// Emits start / thinking / content / mandate / done events; LLM failures
// degrade to a local-parse mandate event, never an error event.
func (h *Handler) ParseStream(c *gin.Context) {
	var req model.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		errorJSON(c, http.StatusBadRequest, CodeBadRequest, "text must not be empty")
		return
	}

	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		errorJSON(c, http.StatusInternalServerError, CodeNetworkError, "streaming not supported")
		return
	}

	sendSSE(c, "start", gin.H{"text": req.Text})
	flusher.Flush()

	mandate := h.Remote.ParseStream(c.Request.Context(), req.Text, func(thinking, content string) error {
		if thinking != "" {
			sendSSE(c, "thinking", gin.H{"content": thinking})
		}
		if content != "" {
			sendSSE(c, "content", gin.H{"content": content})
		}
		flusher.Flush()
		return nil
	})

	sendSSE(c, "mandate", mandate)
	sendSSE(c, "done", nil)
	flusher.Flush()
}

// sendSSE sends a Server-Sent Event
func sendSSE(c *gin.Context, event string, data any) {
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"error\": \"JSON marshal failed\"}\n\n")
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, jsonData)
	} else {
		fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event)
	}
}
