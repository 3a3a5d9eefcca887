package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/chs.go/log"
	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	stripeRefund "github.com/stripe/stripe-go/v81/refund"
)

// StripeSDK is an interface for all the Stripe client methods that will be
// used in this service
type StripeSDK interface {
	CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	CreateRefund(params *stripe.RefundParams) (*stripe.Refund, error)
}

type stripeSDK struct{}

func (s *stripeSDK) CreateCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.New(params)
}

func (s *stripeSDK) GetCheckoutSession(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return checkoutsession.Get(id, params)
}

func (s *stripeSDK) CreateRefund(params *stripe.RefundParams) (*stripe.Refund, error) {
	return stripeRefund.New(params)
}

// NewStripeSDK sets the global Stripe key from config and returns the live SDK
func NewStripeSDK(cfg *config.Config) StripeSDK {
	stripe.Key = cfg.StripeAPIKey
	return &stripeSDK{}
}

// StripeService handles the specific functionality of integrating Stripe
// checkout sessions into this service
type StripeService struct {
	Client StripeSDK
	Config config.Config
}

// CreateCheckoutSession creates a hosted checkout session with Stripe. A
// request carrying a successUrl produces a redirect session with a URL; a
// request without one produces an embedded session with a client secret.
func (s *StripeService) CreateCheckoutSession(req *http.Request, incoming *models.IncomingCheckoutResourceRequest) (*stripe.CheckoutSession, ResponseType, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(incoming.CustomerEmail),
	}

	if incoming.SuccessURL != "" {
		params.SuccessURL = stripe.String(incoming.SuccessURL)
		if incoming.CancelURL != "" {
			params.CancelURL = stripe.String(incoming.CancelURL)
		}
	} else {
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeEmbedded))
	}

	if len(incoming.Metadata) > 0 {
		params.Metadata = incoming.Metadata
	}

	lineItem, responseType, err := s.buildLineItem(incoming)
	if err != nil {
		return nil, responseType, err
	}
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{lineItem}

	checkoutSession, err := s.Client.CreateCheckoutSession(params)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating checkout session with stripe: [%v]", err)
	}

	log.TraceR(req, "created stripe checkout session", log.Data{"session_id": checkoutSession.ID})

	return checkoutSession, Success, nil
}

// CheckProviderStatus retrieves a checkout session from Stripe and projects
// the fields served by the session-status endpoint
func (s *StripeService) CheckProviderStatus(sessionID string) (*models.SessionStatusRest, ResponseType, error) {
	checkoutSession, err := s.Client.GetCheckoutSession(sessionID, &stripe.CheckoutSessionParams{})
	if err != nil {
		return nil, Error, fmt.Errorf("error getting checkout session from stripe: [%v]", err)
	}

	email := checkoutSession.CustomerEmail
	if checkoutSession.CustomerDetails != nil && checkoutSession.CustomerDetails.Email != "" {
		email = checkoutSession.CustomerDetails.Email
	}

	status := &models.SessionStatusRest{
		Status:        string(checkoutSession.Status),
		PaymentStatus: string(checkoutSession.PaymentStatus),
		CustomerEmail: email,
		Amount:        convertFromMinorUnits(checkoutSession.AmountTotal),
	}

	return status, Success, nil
}

// CreateRefund refunds the payment captured for a checkout session
func (s *StripeService) CreateRefund(paymentIntentID string, amount string) (*stripe.Refund, ResponseType, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}

	if amount != "" {
		amountMinor, err := convertToMinorUnits(amount)
		if err != nil {
			return nil, InvalidData, fmt.Errorf("error converting refund amount to minor units: [%v]", err)
		}
		params.Amount = stripe.Int64(amountMinor)
	}

	refund, err := s.Client.CreateRefund(params)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating refund with stripe: [%v]", err)
	}

	return refund, Success, nil
}

func (s *StripeService) buildLineItem(incoming *models.IncomingCheckoutResourceRequest) (*stripe.CheckoutSessionLineItemParams, ResponseType, error) {
	if incoming.PriceID != "" {
		return &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(incoming.PriceID),
			Quantity: stripe.Int64(1),
		}, Success, nil
	}

	amountMinor, err := convertToMinorUnits(incoming.Amount.String())
	if err != nil {
		return nil, InvalidData, fmt.Errorf("error converting amount to minor units: [%v]", err)
	}

	currency := incoming.Currency
	if currency == "" {
		currency = s.Config.DefaultCurrency
	}

	productName := incoming.Description
	if productName == "" {
		productName = "Checkout"
	}

	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(strings.ToLower(currency)),
			UnitAmount: stripe.Int64(amountMinor),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(productName),
			},
		},
		Quantity: stripe.Int64(1),
	}, Success, nil
}

// convertToMinorUnits converts a major-unit decimal amount, e.g. "116.32",
// into the minor units the provider APIs expect. Amounts with more than
// two decimal places are rejected.
func convertToMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, err
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount [%s] has more than two decimal places", amount)
	}
	return d.Shift(2).IntPart(), nil
}

// convertFromMinorUnits renders a minor-unit amount as a major-unit decimal string
func convertFromMinorUnits(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
