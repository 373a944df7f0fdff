package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
	service "github.com/terrazza/bizplanner/internal/service/whatsapp"
)

const webhookTimeout = 2 * time.Minute

// WebhookHandler receives operator commands from the WhatsApp Cloud API.
type WebhookHandler struct {
	svc    service.MessagingService
	logger *zap.Logger
	// async detaches message handling from the request so Meta gets its 200 quickly.
	async bool
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger, async: true}
}

// Verify responds to Meta's webhook verification challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	resp, err := h.svc.VerifyWebhookToken(mode, token, challenge)
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, resp)
}

// Receive answers operator messages. Callbacks carrying only delivery
// receipts are acknowledged without work.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if len(payload.InboundMessages()) == 0 {
		h.logger.Debug("webhook without messages", zap.String("object", payload.Object))
		c.Status(http.StatusOK)
		return
	}

	if !h.async {
		if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
			h.logger.Error("failed processing webhook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
			return
		}
		c.Status(http.StatusOK)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
		defer cancel()
		if err := h.svc.HandleWebhook(ctx, payload); err != nil {
			h.logger.Error("failed processing webhook", zap.Error(err))
		}
	}()
	c.Status(http.StatusOK)
}
