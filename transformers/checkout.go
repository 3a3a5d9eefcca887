package transformers

import (
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
)

// CheckoutTransformer transforms checkout resource data between rest and database models
type CheckoutTransformer struct{}

// TransformToDB transforms checkout resource rest model into checkout resource database model
func (ct CheckoutTransformer) TransformToDB(rest models.CheckoutResourceRest) models.CheckoutResourceDB {
	checkoutResourceData := models.CheckoutResourceDataDB{
		Amount:        rest.Amount,
		Currency:      rest.Currency,
		CustomerEmail: rest.CustomerEmail,
		Description:   rest.Description,
		Status:        rest.Status,
		PaymentStatus: rest.PaymentStatus,
		CreatedAt:     rest.CreatedAt,
		CompletedAt:   rest.CompletedAt,
		Metadata:      rest.Metadata,
		Links:         models.CheckoutLinksDB(rest.Links),
	}

	checkoutResource := models.CheckoutResourceDB{
		ID:                rest.SessionID,
		PaymentMethod:     rest.PaymentMethod,
		ExternalPaymentID: rest.ExternalPaymentID,
		Data:              checkoutResourceData,
		Refunds:           transformRefundsToDB(rest.Refunds),
	}

	return checkoutResource
}

// TransformToRest transforms checkout resource database model into checkout resource rest model
func (ct CheckoutTransformer) TransformToRest(dbResource models.CheckoutResourceDB) models.CheckoutResourceRest {
	checkoutResource := models.CheckoutResourceRest{
		SessionID:         dbResource.ID,
		PaymentMethod:     dbResource.PaymentMethod,
		ExternalPaymentID: dbResource.ExternalPaymentID,
		Amount:            dbResource.Data.Amount,
		Currency:          dbResource.Data.Currency,
		CustomerEmail:     dbResource.Data.CustomerEmail,
		Description:       dbResource.Data.Description,
		Status:            dbResource.Data.Status,
		PaymentStatus:     dbResource.Data.PaymentStatus,
		CreatedAt:         dbResource.Data.CreatedAt,
		CompletedAt:       dbResource.Data.CompletedAt,
		Metadata:          dbResource.Data.Metadata,
		Links:             models.CheckoutLinksRest(dbResource.Data.Links),
		Refunds:           transformRefundsToRest(dbResource.Refunds),
	}
	return checkoutResource
}

func transformRefundsToDB(refunds []models.RefundRest) []models.RefundResourceDB {
	if refunds == nil {
		return nil
	}
	dbRefunds := make([]models.RefundResourceDB, len(refunds))
	for i, refund := range refunds {
		dbRefunds[i] = models.RefundResourceDB(refund)
	}
	return dbRefunds
}

func transformRefundsToRest(refunds []models.RefundResourceDB) []models.RefundRest {
	if refunds == nil {
		return nil
	}
	restRefunds := make([]models.RefundRest, len(refunds))
	for i, refund := range refunds {
		restRefunds[i] = models.RefundRest(refund)
	}
	return restRefunds
}
