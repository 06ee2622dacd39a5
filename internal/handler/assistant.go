// Package handler exposes the gateway's HTTP API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medassist/assistant-gateway/internal/service"
	"go.uber.org/zap"
)

// Engine is the assistant surface the handlers call.
type Engine interface {
	ProcessMessage(ctx context.Context, text string) service.Reply
	ProcessTranscript(ctx context.Context, transcript string) service.Reply
}

// Store is the snapshot surface the handlers call.
type Store interface {
	Refresh(ctx context.Context) error
}

// Pinger reports backend reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AssistantHandler implements the assistant API endpoints.
type AssistantHandler struct {
	engine Engine
	store  Store
	pinger Pinger
	logger *zap.Logger
}

func NewAssistantHandler(engine Engine, store Store, pinger Pinger, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		engine: engine,
		store:  store,
		pinger: pinger,
		logger: logger,
	}
}

// Register wires the handler's routes onto the router.
func (h *AssistantHandler) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1/assistant")
	v1.POST("/message", h.PostMessage)
	v1.POST("/voice", h.PostVoice)
	v1.POST("/refresh", h.PostRefresh)
	r.GET("/health", h.GetHealth)
}

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

type voiceRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

type replyResponse struct {
	Reply    string `json:"reply"`
	Spoken   string `json:"spoken,omitempty"`
	OpenForm string `json:"open_form,omitempty"`
	Prefill  any    `json:"prefill,omitempty"`
	Navigate string `json:"navigate,omitempty"`
}

func toResponse(reply service.Reply) replyResponse {
	return replyResponse{
		Reply:    reply.Text,
		Spoken:   reply.Spoken,
		OpenForm: string(reply.OpenForm),
		Prefill:  reply.Prefill,
		Navigate: reply.Navigate,
	}
}

// PostMessage processes one chat message.
func (h *AssistantHandler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request body",
		})
		return
	}

	reply := h.engine.ProcessMessage(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, toResponse(reply))
}

// PostVoice processes one voice transcript.
func (h *AssistantHandler) PostVoice(c *gin.Context) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request body",
		})
		return
	}

	reply := h.engine.ProcessTranscript(c.Request.Context(), req.Transcript)
	c.JSON(http.StatusOK, toResponse(reply))
}

// PostRefresh forces a full snapshot refresh.
func (h *AssistantHandler) PostRefresh(c *gin.Context) {
	if err := h.store.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("manual snapshot refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    "BACKEND_ERROR",
			"message": "Failed to refresh from backend",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// GetHealth reports gateway and backend reachability.
func (h *AssistantHandler) GetHealth(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed: backend unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"backend": "disconnected",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"backend": "connected",
		"service": "assistant-gateway",
		"version": "1.0.0",
	})
}
