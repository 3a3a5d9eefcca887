package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/checkout.api.ch.gov.uk/transformers"
	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"
)

// PaymentMethod values accepted on the create-checkout-session request
const (
	PaymentMethodStripe = "stripe"
	PaymentMethodPayPal = "paypal"
)

// CheckoutStatus Enum Type
type CheckoutStatus int

// Enumeration containing all possible checkout statuses
const (
	Open CheckoutStatus = 1 + iota
	Complete
	Expired
	Failed
)

// String representation of checkout statuses
var checkoutStatuses = [...]string{
	"open",
	"complete",
	"expired",
	"failed",
}

func (checkoutStatus CheckoutStatus) String() string {
	return checkoutStatuses[checkoutStatus-1]
}

// CheckoutService contains the DAO for db access and the provider services
type CheckoutService struct {
	DAO    dao.DAO
	Config config.Config
	Stripe *StripeService
	PayPal *PayPalService
}

// CreateCheckoutSession validates the incoming request, creates a session
// with the selected payment provider and writes a checkout record to the DB
func (service *CheckoutService) CreateCheckoutSession(req *http.Request, incoming *models.IncomingCheckoutResourceRequest) (*models.CheckoutSessionRest, ResponseType, error) {
	if err := validateCheckoutCreate(incoming); err != nil {
		return nil, InvalidData, fmt.Errorf("invalid incoming checkout session request: [%v]", err)
	}

	paymentMethod := incoming.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentMethodStripe
	}

	var sessionRest *models.CheckoutSessionRest
	var amount string

	switch paymentMethod {
	case PaymentMethodStripe:
		checkoutSession, responseType, err := service.Stripe.CreateCheckoutSession(req, incoming)
		if err != nil {
			return nil, responseType, err
		}
		sessionRest = &models.CheckoutSessionRest{
			SessionID:    checkoutSession.ID,
			URL:          checkoutSession.URL,
			ClientSecret: checkoutSession.ClientSecret,
		}
		amount = convertFromMinorUnits(checkoutSession.AmountTotal)
	case PaymentMethodPayPal:
		var responseType ResponseType
		var err error
		sessionRest, responseType, err = service.PayPal.CreateCheckoutSession(req, incoming)
		if err != nil {
			return nil, responseType, err
		}
		amount = incoming.Amount.String()
	default:
		return nil, InvalidData, fmt.Errorf("payment method [%s] not recognised", paymentMethod)
	}

	checkoutResourceRest := models.CheckoutResourceRest{
		SessionID:     sessionRest.SessionID,
		PaymentMethod: paymentMethod,
		Amount:        amount,
		Currency:      incoming.Currency,
		CustomerEmail: incoming.CustomerEmail,
		Description:   incoming.Description,
		Status:        Open.String(),
		// To match the format time is saved to mongo, e.g. "2018-11-22T08:39:16.782Z", truncate the time
		CreatedAt: time.Now().Truncate(time.Millisecond),
		Metadata:  incoming.Metadata,
		Links: models.CheckoutLinksRest{
			Success: incoming.SuccessURL,
			Cancel:  incoming.CancelURL,
		},
	}

	checkoutResourceDB := transformers.CheckoutTransformer{}.TransformToDB(checkoutResourceRest)
	if err := service.DAO.CreateCheckoutResource(&checkoutResourceDB); err != nil {
		return nil, Error, fmt.Errorf("error writing checkout resource to database: [%v]", err)
	}

	log.InfoR(req, "created checkout session", log.Data{"session_id": sessionRest.SessionID, "payment_method": paymentMethod})

	return sessionRest, Success, nil
}

// GetSessionStatus looks the session up with the payment provider and
// projects a subset of its fields. The local checkout record determines
// which provider holds the session; sessions with no local record are
// looked up with Stripe, the default provider.
func (service *CheckoutService) GetSessionStatus(req *http.Request, sessionID string) (*models.SessionStatusRest, ResponseType, error) {
	paymentMethod := PaymentMethodStripe

	checkoutResource, err := service.DAO.GetCheckoutResource(sessionID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting checkout resource from database: [%v]", err)
	}
	if checkoutResource != nil {
		paymentMethod = checkoutResource.PaymentMethod
	}

	switch paymentMethod {
	case PaymentMethodStripe:
		return service.Stripe.CheckProviderStatus(sessionID)
	case PaymentMethodPayPal:
		return service.PayPal.CheckProviderStatus(sessionID)
	}

	return nil, Error, fmt.Errorf("payment method, [%s], for resource [%s] not recognised", paymentMethod, sessionID)
}

// CaptureCheckoutSession captures the payment behind an approved PayPal
// checkout session and marks the checkout record complete. Stripe sessions
// are captured by the provider itself, so only paypal sessions are accepted.
func (service *CheckoutService) CaptureCheckoutSession(req *http.Request, sessionID string) (*models.SessionStatusRest, ResponseType, error) {
	checkoutResource, err := service.DAO.GetCheckoutResource(sessionID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting checkout resource from database: [%v]", err)
	}
	if checkoutResource == nil {
		return nil, NotFound, fmt.Errorf("checkout session not found. id: %s", sessionID)
	}

	if checkoutResource.PaymentMethod != PaymentMethodPayPal {
		return nil, InvalidData, fmt.Errorf("checkout session [%s] is not captured by this service", sessionID)
	}
	if checkoutResource.Data.Status == Complete.String() {
		return nil, InvalidData, fmt.Errorf("checkout session [%s] has already been captured", sessionID)
	}

	captureID, responseType, err := service.PayPal.CapturePayment(sessionID)
	if err != nil {
		return nil, responseType, err
	}

	checkoutUpdate := models.CheckoutResourceDB{
		ExternalPaymentID: captureID,
		Data: models.CheckoutResourceDataDB{
			Status:        Complete.String(),
			PaymentStatus: "paid",
			// To match the format time is saved to mongo, e.g. "2018-11-22T08:39:16.782Z", truncate the time
			CompletedAt: time.Now().Truncate(time.Millisecond),
		},
	}
	if err := service.DAO.PatchCheckoutResource(sessionID, &checkoutUpdate); err != nil {
		return nil, Error, fmt.Errorf("error patching checkout resource on database: [%v]", err)
	}

	log.InfoR(req, "captured checkout session", log.Data{"session_id": sessionID, "capture_id": captureID})

	return &models.SessionStatusRest{
		Status:        Complete.String(),
		PaymentStatus: "paid",
		CustomerEmail: checkoutResource.Data.CustomerEmail,
		Amount:        checkoutResource.Data.Amount,
	}, Success, nil
}

// GetCheckoutResource retrieves the local checkout record for a session
func (service *CheckoutService) GetCheckoutResource(sessionID string) (*models.CheckoutResourceRest, ResponseType, error) {
	checkoutResource, err := service.DAO.GetCheckoutResource(sessionID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting checkout resource from database: [%v]", err)
	}
	if checkoutResource == nil {
		return nil, NotFound, nil
	}

	checkoutResourceRest := transformers.CheckoutTransformer{}.TransformToRest(*checkoutResource)
	return &checkoutResourceRest, Success, nil
}

func validateCheckoutCreate(incoming *models.IncomingCheckoutResourceRequest) error {
	validate := validator.New()
	return validate.Struct(incoming)
}
