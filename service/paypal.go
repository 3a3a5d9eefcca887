package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/chs.go/log"
	"github.com/plutov/paypal/v4"
)

var client *paypal.Client

// errPayPalNotConfigured is returned when a paypal session is requested but
// no PayPal client id was supplied in config
var errPayPalNotConfigured = fmt.Errorf("paypal integration is not configured")

// GetPayPalClient returns the singleton PayPal client, authenticating on first use
func GetPayPalClient(cfg config.Config) (*paypal.Client, error) {
	if client != nil {
		return client, nil
	}

	paypalAPIBase := getPayPalAPIBase(cfg.PaypalEnv)
	if paypalAPIBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PaypalEnv)
	}

	c, err := paypal.NewClient(cfg.PaypalClientID, cfg.PaypalSecret, paypalAPIBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}
	client = c
	return c, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be used
// in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
	RefundCapture(ctx context.Context, captureID string, refundCaptureRequest paypal.RefundCaptureRequest) (*paypal.RefundResponse, error)
}

// PayPalService handles the specific functionality of integrating PayPal into checkout sessions
type PayPalService struct {
	Client PayPalSDK
	Config config.Config
}

// CreateCheckoutSession creates a PayPal order for the incoming request and
// returns the order ID alongside the approve URL the customer is sent to
func (pp *PayPalService) CreateCheckoutSession(req *http.Request, incoming *models.IncomingCheckoutResourceRequest) (*models.CheckoutSessionRest, ResponseType, error) {
	if pp.Client == nil {
		return nil, InvalidData, errPayPalNotConfigured
	}

	currency := incoming.Currency
	if currency == "" {
		currency = pp.Config.DefaultCurrency
	}

	order, err := pp.Client.CreateOrder(
		context.Background(),
		paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				Description: incoming.Description,
				Amount: &paypal.PurchaseUnitAmount{
					Value:    incoming.Amount.String(),
					Currency: strings.ToUpper(currency),
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: incoming.SuccessURL,
			CancelURL: incoming.CancelURL,
		},
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating order: [%v]", err)
	}

	if order.Status != paypal.OrderStatusCreated {
		log.Debug(fmt.Sprintf("paypal order response status: %s", order.Status))
		return nil, Error, fmt.Errorf("failed to correctly create paypal order - status is not CREATED")
	}

	var nextURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			nextURL = link.Href
		}
	}
	if nextURL == "" {
		return nil, Error, fmt.Errorf("no approve link returned on paypal order [%s]", order.ID)
	}

	log.TraceR(req, "created paypal order", log.Data{"order_id": order.ID})

	return &models.CheckoutSessionRest{
		SessionID: order.ID,
		URL:       nextURL,
	}, Success, nil
}

// CheckProviderStatus retrieves the order from PayPal and projects it into
// the session-status response shape
func (pp *PayPalService) CheckProviderStatus(orderID string) (*models.SessionStatusRest, ResponseType, error) {
	if pp.Client == nil {
		return nil, InvalidData, errPayPalNotConfigured
	}

	order, err := pp.Client.GetOrder(context.Background(), orderID)
	if err != nil {
		return nil, Error, fmt.Errorf("error checking order status with paypal: [%v]", err)
	}

	status := &models.SessionStatusRest{
		Status:        strings.ToLower(string(order.Status)),
		PaymentStatus: "unpaid",
	}
	if order.Status == paypal.OrderStatusCompleted {
		status.PaymentStatus = "paid"
	}
	if order.Payer != nil {
		status.CustomerEmail = order.Payer.EmailAddress
	}
	if len(order.PurchaseUnits) > 0 && order.PurchaseUnits[0].Amount != nil {
		status.Amount = order.PurchaseUnits[0].Amount.Value
	}

	return status, Success, nil
}

// CapturePayment captures an approved PayPal order and returns the capture ID
func (pp *PayPalService) CapturePayment(orderID string) (string, ResponseType, error) {
	if pp.Client == nil {
		return "", InvalidData, errPayPalNotConfigured
	}

	capture, err := pp.Client.CaptureOrder(context.Background(), orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return "", Error, fmt.Errorf("error capturing order with paypal: [%v]", err)
	}

	if capture.Status != paypal.OrderStatusCompleted {
		log.Debug(fmt.Sprintf("paypal capture response status: %s", capture.Status))
		return "", Error, fmt.Errorf("failed to correctly capture paypal order - status is not COMPLETED")
	}

	var captureID string
	for _, unit := range capture.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, payment := range unit.Payments.Captures {
			captureID = payment.ID
		}
	}
	if captureID == "" {
		return "", Error, fmt.Errorf("no capture returned on paypal order [%s]", orderID)
	}

	return captureID, Success, nil
}

// CreateRefund refunds a captured PayPal payment
func (pp *PayPalService) CreateRefund(captureID string) (*paypal.RefundResponse, ResponseType, error) {
	if pp.Client == nil {
		return nil, InvalidData, errPayPalNotConfigured
	}

	refund, err := pp.Client.RefundCapture(context.Background(), captureID, paypal.RefundCaptureRequest{})
	if err != nil {
		return nil, Error, fmt.Errorf("error refunding capture with paypal: [%v]", err)
	}

	return refund, Success, nil
}

// getPayPalAPIBase returns the base URL of the PayPal API dependent on
// which environment the service is running in
func getPayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
