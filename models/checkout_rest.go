package models

import (
	"encoding/json"
	"time"
)

// IncomingCheckoutResourceRequest is the data received in the body of the incoming request
type IncomingCheckoutResourceRequest struct {
	Amount        json.Number       `json:"amount"        validate:"required_without=PriceID"`
	PriceID       string            `json:"priceId"       validate:"required_without=Amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customerEmail" validate:"required,email"`
	Description   string            `json:"description"`
	SuccessURL    string            `json:"successUrl"`
	CancelURL     string            `json:"cancelUrl"`
	Metadata      map[string]string `json:"metadata"`
	PaymentMethod string            `json:"paymentMethod"`
}

// CheckoutSessionRest is returned to the caller once a session has been
// created with the payment provider. URL is populated for redirect
// sessions and ClientSecret for embedded sessions, whichever the provider
// returned.
type CheckoutSessionRest struct {
	SessionID    string `json:"sessionId"`
	URL          string `json:"url,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// SessionStatusRest is the projection of provider session fields served by
// the session-status endpoint
type SessionStatusRest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CustomerEmail string `json:"customerEmail"`
	Amount        string `json:"amount"`
}

// CheckoutResourceRest contains all checkout session details held on the
// local checkout record
type CheckoutResourceRest struct {
	SessionID         string            `json:"session_id"`
	PaymentMethod     string            `json:"payment_method"`
	ExternalPaymentID string            `json:"external_payment_id,omitempty"`
	Amount            string            `json:"amount"`
	Currency          string            `json:"currency"`
	CustomerEmail     string            `json:"customer_email"`
	Description       string            `json:"description,omitempty"`
	Status            string            `json:"status"`
	PaymentStatus     string            `json:"payment_status,omitempty"`
	CreatedAt         time.Time         `json:"created_at,omitempty"`
	CompletedAt       time.Time         `json:"completed_at,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Links             CheckoutLinksRest `json:"links"`
	Refunds           []RefundRest      `json:"refunds,omitempty"`
}

// CheckoutLinksRest is the set of URLs the provider redirects the customer
// back to once the hosted journey finishes
type CheckoutLinksRest struct {
	Success string `json:"success"`
	Cancel  string `json:"cancel"`
}

// CreateRefundRequest is the data received in the body of a create refund request.
// A zero amount refunds the full captured value.
type CreateRefundRequest struct {
	Amount json.Number `json:"amount"`
}

// RefundRest is the refund resource returned in responses and embedded in
// the checkout record
type RefundRest struct {
	RefundID  string    `json:"refundId"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// WebhookAckRest acknowledges receipt of a webhook event
type WebhookAckRest struct {
	Received bool `json:"received"`
}

// HealthCheckRest is the health probe response body
type HealthCheckRest struct {
	Message string `json:"message"`
}
