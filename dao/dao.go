package dao

import "github.com/companieshouse/checkout.api.ch.gov.uk/models"

// DAO is an interface for accessing dao from a backend store
type DAO interface {
	CreateCheckoutResource(checkoutResource *models.CheckoutResourceDB) error
	GetCheckoutResource(id string) (*models.CheckoutResourceDB, error)
	PatchCheckoutResource(id string, checkoutUpdate *models.CheckoutResourceDB) error
	CreateWebhookEvent(event *models.WebhookEventDB) error
	WebhookEventExists(id string) (bool, error)
}
