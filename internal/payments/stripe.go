package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/config"
	"github.com/NailSitePro/salon-platform/internal/httperr"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

// Service fronts Stripe for the subscription screens. Provider mechanics
// stay behind this boundary; the rest of the platform only sees plan ids
// and the stats counter.
type Service struct {
	db            *gorm.DB
	stats         *stats.Maintainer
	webhookSecret string
}

func NewService(db *gorm.DB, st *stats.Maintainer, cfg *config.Config) *Service {
	stripe.Key = cfg.StripeSecretKey

	return &Service{
		db:            db,
		stats:         st,
		webhookSecret: cfg.StripeWebhookSecret,
	}
}

// --------------------------------------------------
// Payment intents
// --------------------------------------------------

func (s *Service) CreatePaymentIntent(
	ctx context.Context,
	amountCents int64,
	currency string,
	description string,
) (string, error) {

	if amountCents < 1 {
		return "", httperr.ErrBusiness("invalid_argument")
	}
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// --------------------------------------------------
// Subscriptions
// --------------------------------------------------

type SubscriptionResult struct {
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
	ClientSecret   string `json:"client_secret,omitempty"`
}

func (s *Service) CreateSubscription(
	ctx context.Context,
	userID uint,
	planID uint,
) (*SubscriptionResult, error) {

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}

	var plan models.SubscriptionPlan
	if err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", planID, true).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}
	if plan.StripePriceID == "" {
		return nil, httperr.ErrBusiness("invalid_argument")
	}

	custID, err := s.ensureCustomer(ctx, &user)
	if err != nil {
		return nil, err
	}

	params := &stripe.SubscriptionParams{
		Customer: stripe.String(custID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(plan.StripePriceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	if plan.TrialPeriodDays > 0 {
		params.TrialPeriodDays = stripe.Int64(int64(plan.TrialPeriodDays))
	}
	params.AddExpand("latest_invoice.payment_intent")
	params.Context = ctx

	sub, err := subscription.New(params)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&user).
		Update("stripe_subscription_id", sub.ID).Error; err != nil {
		log.Printf("payments: saving subscription id for user %d failed: %v", user.ID, err)
	}

	res := &SubscriptionResult{
		SubscriptionID: sub.ID,
		Status:         string(sub.Status),
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		res.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return res, nil
}

func (s *Service) ensureCustomer(ctx context.Context, user *models.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Username),
	}
	params.Context = ctx

	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).
		Model(user).
		Update("stripe_customer_id", cust.ID).Error; err != nil {
		return "", err
	}
	user.StripeCustomerID = cust.ID

	return cust.ID, nil
}

// --------------------------------------------------
// Webhook
// --------------------------------------------------

// HandleWebhook verifies the signature and reacts to subscription
// lifecycle events. Unknown event types are acknowledged and ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return httperr.ErrBusiness("unauthorized")
	}

	switch event.Type {
	case "customer.subscription.created":
		s.stats.OnSubscriptionActivated(ctx)

	case "customer.subscription.deleted":
		s.stats.OnSubscriptionCancelled(ctx)

		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err == nil && sub.ID != "" {
			if err := s.db.WithContext(ctx).
				Model(&models.User{}).
				Where("stripe_subscription_id = ?", sub.ID).
				Update("stripe_subscription_id", "").Error; err != nil {
				log.Printf("payments: clearing subscription %s failed: %v", sub.ID, err)
			}
		}

	default:
		// acknowledged, nothing to do
	}

	return nil
}

// --------------------------------------------------
// Plans
// --------------------------------------------------

func (s *Service) ListActivePlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_cents ASC").
		Find(&plans).Error
	return plans, err
}

func (s *Service) GetPlan(ctx context.Context, id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}
	return &plan, nil
}
