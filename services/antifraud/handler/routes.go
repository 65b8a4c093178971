package handler

import (
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/middleware"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	nsqpkg "github.com/efkobus/antifraud-system/internal/pkg/nsq"
	"github.com/efkobus/antifraud-system/services/antifraud"
	httpHandler "github.com/efkobus/antifraud-system/services/antifraud/handler/http"
	nsqHandler "github.com/efkobus/antifraud-system/services/antifraud/handler/nsq"
	"github.com/labstack/echo/v4"
)

// Handler combines all handlers for the antifraud service
type Handler struct {
	cfg            *models.Config
	antifraudHTTP  *httpHandler.AntifraudHandler
	chargebackFeed *nsqHandler.ChargebackHandler
}

// NewHandler creates a new combined handler
func NewHandler(antifraudUC antifraud.AntifraudUC, cfg *models.Config, l *logger.ZapLogger) *Handler {
	return &Handler{
		cfg:            cfg,
		antifraudHTTP:  httpHandler.NewAntifraudHandler(antifraudUC, cfg),
		chargebackFeed: nsqHandler.NewChargebackHandler(antifraudUC, nsqHandler.RetryPolicy(cfg.NSQ), l),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = httpHandler.NewRequestValidator(h.cfg.Antifraud.MaxTransactionAmount)

	e.GET("/", h.antifraudHTTP.Info)
	e.POST("/antifraud", h.antifraudHTTP.Evaluate)

	// Internal routes for the chargeback feed and operators (API key required)
	internal := e.Group("/internal", middleware.ValidateAPIKey(h.cfg.APIKey.ChargebackFeed, h.cfg.APIKey.Operator))
	internal.POST("/chargebacks", h.antifraudHTTP.Chargeback)
}

// InitNSQConsumers subscribes to the chargeback feed
func (h *Handler) InitNSQConsumers() error {
	return h.chargebackFeed.InitNSQConsumer(nsqpkg.ConsumerConfig{
		Topic:            h.cfg.NSQ.ChargebackTopic,
		Channel:          h.cfg.NSQ.Channel,
		Address:          h.cfg.NSQ.Address,
		LookupdAddresses: h.cfg.NSQ.LookupdAddresses,
		MaxInFlight:      h.cfg.NSQ.MaxInFlight,
	})
}

// Stop stops the NSQ consumers
func (h *Handler) Stop() {
	h.chargebackFeed.Stop()
}
