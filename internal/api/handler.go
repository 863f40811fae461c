// Package api exposes the webhook surface: one inquiry endpoint and a
// readiness probe.
package api

import (
	"net/http"

	"github.com/bobbyohyeah/skyebot-support/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles webhook requests
type Handler struct {
	bootstrap   *service.Bootstrap
	instruction string
	model       string
	logger      *zap.Logger
}

// NewHandler creates a webhook handler. Every request is answered with
// the given system instruction and model; webhook conversations are
// single-turn, so no session state is kept between requests.
func NewHandler(bootstrap *service.Bootstrap, instruction, model string, logger *zap.Logger) *Handler {
	return &Handler{bootstrap: bootstrap, instruction: instruction, model: model, logger: logger}
}

// InquiryRequest is the webhook request body
type InquiryRequest struct {
	Inquiry string `json:"inquiry" binding:"required"`
}

// Inquire answers one customer inquiry
func (h *Handler) Inquire(c *gin.Context) {
	if !h.bootstrap.Initialized() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is initializing, try again shortly"})
		return
	}

	engine, refs, err := h.bootstrap.Resources()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service configuration error"})
		return
	}

	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inquiry field is required"})
		return
	}

	sess := service.NewSession(h.instruction, refs)
	reply, err := engine.Generate(c.Request.Context(), h.model, sess.BuildPrompt(req.Inquiry))
	if err != nil {
		h.logger.Error("generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate a response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply.Text})
}

// Health reports readiness
func (h *Handler) Health(c *gin.Context) {
	if !h.bootstrap.Initialized() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "initializing", "initialized": false})
		return
	}
	if _, _, err := h.bootstrap.Resources(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "initialized": true, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "initialized": true})
}
