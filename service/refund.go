package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/chs.go/log"
)

// RefundService handles refunding completed checkout sessions with the
// provider that took the payment
type RefundService struct {
	CheckoutService *CheckoutService
	DAO             dao.DAO
	Config          config.Config
}

// CreateRefund refunds the payment behind a completed checkout session and
// records the refund on the checkout record
func (service *RefundService) CreateRefund(req *http.Request, sessionID string, createRefundResource models.CreateRefundRequest) (*models.RefundRest, ResponseType, error) {
	checkoutResource, err := service.DAO.GetCheckoutResource(sessionID)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting checkout resource from database: [%v]", err)
	}
	if checkoutResource == nil {
		return nil, NotFound, fmt.Errorf("checkout session not found. id: %s", sessionID)
	}

	if checkoutResource.Data.Status != Complete.String() {
		return nil, InvalidData, fmt.Errorf("checkout session [%s] has not been paid", sessionID)
	}
	if checkoutResource.ExternalPaymentID == "" {
		return nil, InvalidData, fmt.Errorf("checkout session [%s] has no captured payment to refund", sessionID)
	}

	var refundRest *models.RefundRest

	switch checkoutResource.PaymentMethod {
	case PaymentMethodStripe:
		refund, responseType, err := service.CheckoutService.Stripe.CreateRefund(checkoutResource.ExternalPaymentID, createRefundResource.Amount.String())
		if err != nil {
			return nil, responseType, err
		}
		refundRest = &models.RefundRest{
			RefundID:  refund.ID,
			Amount:    convertFromMinorUnits(refund.Amount),
			Status:    string(refund.Status),
			CreatedAt: time.Now().Truncate(time.Millisecond),
		}
	case PaymentMethodPayPal:
		refund, responseType, err := service.CheckoutService.PayPal.CreateRefund(checkoutResource.ExternalPaymentID)
		if err != nil {
			return nil, responseType, err
		}
		refundRest = &models.RefundRest{
			RefundID:  refund.ID,
			Amount:    checkoutResource.Data.Amount,
			Status:    refund.Status,
			CreatedAt: time.Now().Truncate(time.Millisecond),
		}
	default:
		return nil, Error, fmt.Errorf("payment method, [%s], for resource [%s] not recognised", checkoutResource.PaymentMethod, sessionID)
	}

	// Add refund information to the checkout record
	checkoutUpdate := models.CheckoutResourceDB{
		Refunds: append(checkoutResource.Refunds, models.RefundResourceDB{
			RefundID:  refundRest.RefundID,
			Amount:    refundRest.Amount,
			Status:    refundRest.Status,
			CreatedAt: refundRest.CreatedAt,
		}),
	}

	if err := service.DAO.PatchCheckoutResource(sessionID, &checkoutUpdate); err != nil {
		return nil, Error, fmt.Errorf("error patching checkout resource on database: [%v]", err)
	}

	log.InfoR(req, "created refund", log.Data{"session_id": sessionID, "refund_id": refundRest.RefundID})

	return refundRest, Success, nil
}
