// internal/handlers/payment.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/gateway"
	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type PaymentHandler struct {
	checkoutService *services.CheckoutService
	watcher         *services.PaymentWatcher
	gateway         gateway.Gateway
}

func NewPaymentHandler(checkoutService *services.CheckoutService, watcher *services.PaymentWatcher, gw gateway.Gateway) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		watcher:         watcher,
		gateway:         gw,
	}
}

// POST /payment/create
//
// Validates the checkout form, creates the hosted payment link and records
// the pending order for this session.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var form services.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCheckoutMissingFields), err.Error())
		return
	}

	link, err := h.checkoutService.Submit(c.Request.Context(), sessionID, &form)
	if err != nil {
		var failure *services.ValidationFailure
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
		case errors.As(err, &failure):
			// Field messages that are translation keys get resolved here;
			// i18n.T passes anything else through unchanged.
			for i := range failure.Fields {
				failure.Fields[i].Message = i18n.T(lang, failure.Fields[i].Message)
			}
			utils.ValidationErrorResponse(c, failure.Fields)
		default:
			// Surface the gateway's own message when it gave one.
			var upstreamErr *upstream.Error
			if errors.As(err, &upstreamErr) {
				utils.BadGatewayResponse(c, upstreamErr.Message)
				return
			}
			utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyCheckoutLinkFailed))
		}
		return
	}

	utils.SuccessResponseWithMeta(c, link, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutSubmitted),
	})
}

// GET /payment/status/:orderCode
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	orderCode := c.Param("orderCode")
	if orderCode == "" {
		utils.BadRequestResponse(c, "Missing order code", nil)
		return
	}

	state, err := h.gateway.GetStatus(c.Request.Context(), orderCode)
	if err != nil {
		var upstreamErr *upstream.Error
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == 404 {
			utils.NotFoundResponse(c, "payment")
			return
		}
		utils.BadGatewayResponse(c, "")
		return
	}

	utils.SuccessResponse(c, state)
}

// POST /payment/watch/:orderCode
//
// Starts background polling of the order's payment status. The response
// returns immediately; the loop keeps running until the status is terminal
// or the watch is stopped.
func (h *PaymentHandler) StartWatch(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderCode := c.Param("orderCode")
	if orderCode == "" {
		utils.BadRequestResponse(c, "Missing order code", nil)
		return
	}

	started := h.watcher.Watch(sessionID, orderCode)

	utils.SuccessResponse(c, gin.H{
		"orderCode": orderCode,
		"watching":  true,
		"started":   started,
		"message":   i18n.T(lang, i18n.KeyPaymentWatchStarted),
	})
}

// DELETE /payment/watch/:orderCode
func (h *PaymentHandler) StopWatch(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderCode := c.Param("orderCode")
	if orderCode == "" {
		utils.BadRequestResponse(c, "Missing order code", nil)
		return
	}

	stopped := h.watcher.Stop(orderCode)

	utils.SuccessResponse(c, gin.H{
		"orderCode": orderCode,
		"watching":  false,
		"stopped":   stopped,
		"message":   i18n.T(lang, i18n.KeyPaymentWatchStopped),
	})
}

// GET /payment/result/:orderCode
//
// Returns the recorded end state of a finished watch, falling back to the
// live watch state when the loop is still running.
func (h *PaymentHandler) GetResult(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderCode := c.Param("orderCode")
	if orderCode == "" {
		utils.BadRequestResponse(c, "Missing order code", nil)
		return
	}

	if outcome, ok := h.watcher.Outcome(orderCode); ok {
		messageKey := i18n.KeyPaymentFailed
		if outcome.Status == models.PaymentStatusCompleted {
			messageKey = i18n.KeyPaymentSuccess
		}
		utils.SuccessResponseWithMeta(c, outcome, gin.H{
			"message": i18n.T(lang, messageKey),
		})
		return
	}

	if h.watcher.Watching(orderCode) {
		utils.SuccessResponse(c, gin.H{
			"orderCode": orderCode,
			"watching":  true,
			"message":   i18n.T(lang, i18n.KeyPaymentPending),
		})
		return
	}

	utils.NotFoundResponse(c, "payment")
}

// GET /payment/pending
//
// Returns this session's stored pending order so an interrupted checkout
// can resume polling.
func (h *PaymentHandler) GetPending(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	pending, err := h.checkoutService.PendingOrder(sessionID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if pending == nil {
		utils.NotFoundResponse(c, "payment")
		return
	}

	utils.SuccessResponse(c, pending)
}
