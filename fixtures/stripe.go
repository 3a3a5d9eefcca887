package fixtures

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v81"
)

// GetCheckoutSession returns a minimal Stripe checkout session for tests
func GetCheckoutSession(id, url, clientSecret string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            id,
		URL:           url,
		ClientSecret:  clientSecret,
		Status:        stripe.CheckoutSessionStatusOpen,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
		AmountTotal:   1050,
		CustomerEmail: "customer@example.com",
	}
}

// GetSessionEventPayload returns a raw webhook event of the given type
// carrying a checkout session object. The api_version matches the SDK so
// that signature construction accepts the payload.
func GetSessionEventPayload(eventID, eventType, sessionID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"api_version":%q,"type":%q,"data":{"object":{"id":%q,"object":"checkout.session","payment_status":"paid","payment_intent":"pi_123"}}}`,
		eventID, stripe.APIVersion, eventType, sessionID))
}

// GenerateSignatureHeader computes a Stripe-Signature header for the
// payload, signed at the supplied time with the supplied secret
func GenerateSignatureHeader(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", at.Unix(), string(payload))))
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}
