package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/httpresp"
	"github.com/NailSitePro/salon-platform/internal/middleware"
	"github.com/NailSitePro/salon-platform/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	payments *payments.Service
}

func NewPaymentHandler(p *payments.Service) *PaymentHandler {
	return &PaymentHandler{payments: p}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateIntentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type CreateSubscriptionRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

// ======================================================
// PLANS
// ======================================================

func (h *PaymentHandler) ListPlans(c *gin.Context) {
	plans, err := h.payments.ListActivePlans(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Could not list subscription plans.")
		return
	}

	httpresp.List(c, plans, int64(len(plans)))
}

func (h *PaymentHandler) GetPlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_argument", "Plan id must be an integer.")
		return
	}

	plan, err := h.payments.GetPlan(c.Request.Context(), uint(id))
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_get_plan", "Could not load the plan.")
		}
		return
	}

	httpresp.OK(c, plan)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	secret, err := h.payments.CreatePaymentIntent(
		c.Request.Context(), req.AmountCents, req.Currency, req.Description)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_intent", "Could not start the payment.")
		}
		return
	}

	httpresp.OK(c, gin.H{"client_secret": secret})
}

func (h *PaymentHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request data.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	res, err := h.payments.CreateSubscription(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_subscription", "Could not start the subscription.")
		}
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// WEBHOOK
// ======================================================

func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Could not read the webhook payload.")
		return
	}

	err = h.payments.HandleWebhook(
		c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "webhook_failed", "Could not process the webhook event.")
		}
		return
	}

	c.Status(http.StatusOK)
}
