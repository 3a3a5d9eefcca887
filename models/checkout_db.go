package models

import "time"

// CheckoutResourceDB contains all checkout session details to be stored in the DB.
// The document is keyed by the provider's session ID.
type CheckoutResourceDB struct {
	ID                string                 `bson:"_id"`
	PaymentMethod     string                 `bson:"payment_method"`
	ExternalPaymentID string                 `bson:"external_payment_id,omitempty"`
	Data              CheckoutResourceDataDB `bson:"data"`
	Refunds           []RefundResourceDB     `bson:"refunds,omitempty"`
}

// CheckoutResourceDataDB is the customer-facing portion of the checkout record
type CheckoutResourceDataDB struct {
	Amount        string            `bson:"amount"`
	Currency      string            `bson:"currency"`
	CustomerEmail string            `bson:"customer_email"`
	Description   string            `bson:"description,omitempty"`
	Status        string            `bson:"status"`
	PaymentStatus string            `bson:"payment_status,omitempty"`
	CreatedAt     time.Time         `bson:"created_at,omitempty"`
	CompletedAt   time.Time         `bson:"completed_at,omitempty"`
	Metadata      map[string]string `bson:"metadata,omitempty"`
	Links         CheckoutLinksDB   `bson:"links"`
}

// CheckoutLinksDB is the set of URLs the provider redirects the customer back to
type CheckoutLinksDB struct {
	Success string `bson:"success"`
	Cancel  string `bson:"cancel"`
}

// RefundResourceDB is a refund recorded against a checkout session
type RefundResourceDB struct {
	RefundID  string    `bson:"refund_id"`
	Amount    string    `bson:"amount"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"created_at"`
}

// WebhookEventDB records a processed webhook event so that redelivered
// events are acknowledged without being processed twice
type WebhookEventDB struct {
	ID          string    `bson:"_id"`
	Type        string    `bson:"type"`
	ProcessedAt time.Time `bson:"processed_at"`
}
