package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/chs.go/log"
	stripe "github.com/stripe/stripe-go/v81"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
)

// Webhook event types acted upon by this service. Everything else is
// acknowledged and ignored.
const (
	EventCheckoutSessionCompleted   = "checkout.session.completed"
	EventCheckoutSessionExpired     = "checkout.session.expired"
	EventCheckoutAsyncPaymentFailed = "checkout.session.async_payment_failed"
)

// WebhookService verifies and dispatches webhook events sent by the payment provider
type WebhookService struct {
	DAO    dao.DAO
	Config config.Config
}

// WebhookResult reports what a processed event was and which checkout
// session it belonged to, so the handler can notify downstream fulfilment
type WebhookResult struct {
	EventID       string
	EventType     string
	SessionID     string
	PaymentStatus string
	Completed     bool
}

// ProcessWebhookEvent verifies the payload signature, deduplicates the
// event and applies its effect to the stored checkout record. Events that
// have been seen before are reported as Duplicate and otherwise ignored.
func (service *WebhookService) ProcessWebhookEvent(req *http.Request, payload []byte, signatureHeader string) (*WebhookResult, ResponseType, error) {
	event, responseType, err := service.decodeEvent(payload, signatureHeader)
	if err != nil {
		return nil, responseType, err
	}

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
	}

	if event.ID != "" {
		exists, err := service.DAO.WebhookEventExists(event.ID)
		if err != nil {
			return nil, Error, fmt.Errorf("error checking webhook event in database: [%v]", err)
		}
		if exists {
			log.InfoR(req, "webhook event already processed", log.Data{"event_id": event.ID})
			return result, Duplicate, nil
		}
	}

	switch string(event.Type) {
	case EventCheckoutSessionCompleted:
		responseType, err = service.handleSessionCompleted(req, event, result)
	case EventCheckoutSessionExpired:
		responseType, err = service.handleSessionClosed(req, event, result, Expired)
	case EventCheckoutAsyncPaymentFailed:
		responseType, err = service.handleSessionClosed(req, event, result, Failed)
	default:
		log.TraceR(req, "unhandled webhook event type", log.Data{"event_type": string(event.Type)})
		responseType = Success
	}
	if err != nil {
		return nil, responseType, err
	}

	if event.ID != "" {
		webhookEvent := &models.WebhookEventDB{
			ID:          event.ID,
			Type:        string(event.Type),
			ProcessedAt: time.Now().Truncate(time.Millisecond),
		}
		if err := service.DAO.CreateWebhookEvent(webhookEvent); err != nil {
			return nil, Error, fmt.Errorf("error recording webhook event in database: [%v]", err)
		}
	}

	return result, responseType, nil
}

// decodeEvent verifies the signature header against the configured signing
// secret. When no secret is configured the payload is parsed unverified.
func (service *WebhookService) decodeEvent(payload []byte, signatureHeader string) (*stripe.Event, ResponseType, error) {
	if service.Config.StripeWebhookSecret != "" {
		event, err := stripewebhook.ConstructEvent(payload, signatureHeader, service.Config.StripeWebhookSecret)
		if err != nil {
			return nil, InvalidData, fmt.Errorf("webhook signature verification failed: [%v]", err)
		}
		return &event, Success, nil
	}

	event := stripe.Event{}
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, InvalidData, fmt.Errorf("error parsing webhook payload: [%v]", err)
	}
	return &event, Success, nil
}

func (service *WebhookService) handleSessionCompleted(req *http.Request, event *stripe.Event, result *WebhookResult) (ResponseType, error) {
	checkoutSession, err := sessionFromEvent(event)
	if err != nil {
		return InvalidData, err
	}

	result.SessionID = checkoutSession.ID
	result.PaymentStatus = string(checkoutSession.PaymentStatus)
	result.Completed = true

	checkoutUpdate := models.CheckoutResourceDB{
		Data: models.CheckoutResourceDataDB{
			Status:        Complete.String(),
			PaymentStatus: string(checkoutSession.PaymentStatus),
			// To match the format time is saved to mongo, e.g. "2018-11-22T08:39:16.782Z", truncate the time
			CompletedAt: time.Now().Truncate(time.Millisecond),
		},
	}
	if checkoutSession.PaymentIntent != nil {
		checkoutUpdate.ExternalPaymentID = checkoutSession.PaymentIntent.ID
	}

	if err := service.DAO.PatchCheckoutResource(checkoutSession.ID, &checkoutUpdate); err != nil {
		return Error, fmt.Errorf("error patching checkout resource on database: [%v]", err)
	}

	log.InfoR(req, "checkout session completed", log.Data{"session_id": checkoutSession.ID, "payment_status": result.PaymentStatus})

	return Success, nil
}

func (service *WebhookService) handleSessionClosed(req *http.Request, event *stripe.Event, result *WebhookResult, status CheckoutStatus) (ResponseType, error) {
	checkoutSession, err := sessionFromEvent(event)
	if err != nil {
		return InvalidData, err
	}

	result.SessionID = checkoutSession.ID
	result.PaymentStatus = string(checkoutSession.PaymentStatus)

	checkoutUpdate := models.CheckoutResourceDB{
		Data: models.CheckoutResourceDataDB{
			Status: status.String(),
		},
	}

	if err := service.DAO.PatchCheckoutResource(checkoutSession.ID, &checkoutUpdate); err != nil {
		return Error, fmt.Errorf("error patching checkout resource on database: [%v]", err)
	}

	log.InfoR(req, "checkout session closed", log.Data{"session_id": checkoutSession.ID, "status": status.String()})

	return Success, nil
}

func sessionFromEvent(event *stripe.Event) (*stripe.CheckoutSession, error) {
	if event.Data == nil {
		return nil, fmt.Errorf("webhook event [%s] does not contain a data object", event.ID)
	}
	var checkoutSession stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
		return nil, fmt.Errorf("error parsing checkout session from webhook event: [%v]", err)
	}
	if checkoutSession.ID == "" {
		return nil, fmt.Errorf("webhook event [%s] does not contain a session id", event.ID)
	}
	return &checkoutSession, nil
}
