package http

import (
	"errors"
	"net/http"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/internal/utils"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/labstack/echo/v4"
)

// AntifraudHandler handles HTTP requests for decisions and chargebacks
type AntifraudHandler struct {
	antifraudUC antifraud.AntifraudUC
	cfg         *models.Config
}

// NewAntifraudHandler creates a new antifraud HTTP handler
func NewAntifraudHandler(antifraudUC antifraud.AntifraudUC, cfg *models.Config) *AntifraudHandler {
	return &AntifraudHandler{
		antifraudUC: antifraudUC,
		cfg:         cfg,
	}
}

// Evaluate handles POST /antifraud.
// A rule denial is a 200; a denial caused by an unavailable dependency is a
// 503 carrying the same deny so callers can retry.
func (h *AntifraudHandler) Evaluate(c echo.Context) error {
	var req models.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.ValidationErrorResponse(c, ValidationDetails(err))
	}

	decision, err := h.antifraudUC.Evaluate(c.Request().Context(), &req)
	resp := models.Recommendation{
		TransactionID:  decision.TransactionID,
		Recommendation: decision.Verdict,
	}
	if err != nil {
		resp.Error = string(decision.Reason)
		if transient(err) {
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Chargeback handles POST /internal/chargebacks
func (h *AntifraudHandler) Chargeback(c echo.Context) error {
	var req models.ChargebackRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.ValidationErrorResponse(c, ValidationDetails(err))
	}

	result, err := h.antifraudUC.ApplyChargeback(c.Request().Context(), req.TransactionID, req.HasChargeback)
	if err != nil {
		if !transient(err) {
			return utils.ValidationErrorResponse(c, map[string]string{"transaction_id": err.Error()})
		}
		return utils.ServiceUnavailableResponse(c, "Failed to apply chargeback")
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "Chargeback applied", result)
}

// Info handles GET /
func (h *AntifraudHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":    h.cfg.App.Name,
		"version": h.cfg.App.Version,
		"status":  "online",
		"endpoints": echo.Map{
			"antifraud": "/antifraud",
			"health":    "/health",
			"metrics":   h.cfg.Metrics.Path,
		},
	})
}

func transient(err error) bool {
	switch {
	case errors.Is(err, antifraud.ErrDuplicateTransaction),
		errors.Is(err, antifraud.ErrInvalidTransaction),
		errors.Is(err, antifraud.ErrUnparsableTimestamp):
		return false
	default:
		return true
	}
}
