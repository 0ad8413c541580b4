package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ahl-official/ahl-utm-tracking/docs"
	"github.com/ahl-official/ahl-utm-tracking/internal/dto"
	"github.com/ahl-official/ahl-utm-tracking/internal/export"
	"github.com/ahl-official/ahl-utm-tracking/internal/repository"
	"github.com/ahl-official/ahl-utm-tracking/internal/service"
)

// WebhookSecretHeader carries the shared secret on inbound webhook calls
const WebhookSecretHeader = "X-Webhook-Secret"

type Handler struct {
	attribution   service.AttributionServicer
	exporter      export.Runner
	store         repository.Pinger
	webhookSecret string
	router        *gin.Engine
	log           *zap.Logger
}

func NewHandler(attribution service.AttributionServicer, exporter export.Runner, store repository.Pinger, webhookSecret string, log *zap.Logger) *Handler {
	h := &Handler{
		attribution:   attribution,
		exporter:      exporter,
		store:         store,
		webhookSecret: webhookSecret,
		router:        gin.Default(),
		log:           log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/ready", h.readyCheck)
	h.router.POST("/clicks", h.recordClick)
	h.router.POST("/webhook", h.requireWebhookSecret, h.handleWebhook)
	h.router.POST("/export", h.runExport)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// requireWebhookSecret rejects webhook calls without the shared secret
func (h *Handler) requireWebhookSecret(c *gin.Context) {
	if c.GetHeader(WebhookSecretHeader) != h.webhookSecret {
		h.log.Warn("Webhook call with bad secret",
			zap.String("remote_addr", c.ClientIP()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid webhook secret",
		})
		return
	}
	c.Next()
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// readyCheck handles readiness requests
// @Summary Readiness check
// @Description Check if the click store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func (h *Handler) readyCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// recordClick handles POST /clicks
// @Summary Record an ad click
// @Description Store a click session captured by the landing page, applying attribution defaults
// @Tags clicks
// @Accept json
// @Produce json
// @Param click body dto.ClickRequest true "Click data"
// @Success 201 {object} dto.ClickResponse
// @Success 200 {object} dto.ClickResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clicks [post]
func (h *Handler) recordClick(c *gin.Context) {
	var req dto.ClickRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid click request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.attribution.RecordClick(&req)
	if err != nil {
		h.log.Error("Failed to record click",
			zap.Error(err),
			zap.String("session_id", req.SessionID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	status := http.StatusCreated
	if response.Status == "exists" {
		status = http.StatusOK
	}
	c.JSON(status, response)
}

// handleWebhook handles POST /webhook
// @Summary Process an inbound message webhook
// @Description Attribute an inbound WhatsApp message to a stored click
// @Tags webhook
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Param message body dto.InboundMessageRequest true "Inbound message event"
// @Success 200 {object} dto.InboundMessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /webhook [post]
func (h *Handler) handleWebhook(c *gin.Context) {
	var req dto.InboundMessageRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.attribution.AttributeMessage(&req)
	if err != nil {
		if errors.Is(err, service.ErrMissingPhoneNumber) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
			return
		}

		h.log.Error("Failed to attribute message",
			zap.Error(err),
			zap.String("conversation_id", req.ConversationID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// runExport handles POST /export
// @Summary Run a batch export
// @Description Mirror engaged, unsynced clicks to the reporting sheet once
// @Tags export
// @Produce json
// @Success 200 {object} dto.ExportResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /export [post]
func (h *Handler) runExport(c *gin.Context) {
	summary, err := h.exporter.Run(c.Request.Context())
	if err != nil {
		h.log.Error("Manual export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ExportResponse{
		Status:   "ok",
		Selected: summary.Selected,
		Appended: summary.Appended,
		Marked:   summary.Marked,
	})
}
