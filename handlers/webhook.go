package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/checkout.api.ch.gov.uk/service"
	"github.com/companieshouse/checkout.api.ch.gov.uk/utils"
	"github.com/companieshouse/chs.go/log"
)

// maxWebhookBodyBytes caps the webhook payload size read off the wire
const maxWebhookBodyBytes = int64(65536)

// handleCheckoutMessage allows us to mock the call to produceCheckoutMessage for unit tests
var handleCheckoutMessage = produceCheckoutMessage

// HandleWebhook receives webhook events from the payment provider,
// verifies the signature header when a signing secret is configured and
// acknowledges receipt
func HandleWebhook(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(req.Body)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error reading webhook request body: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("error reading request body"), http.StatusBadRequest)
		return
	}

	signatureHeader := req.Header.Get("Stripe-Signature")

	result, responseType, err := webhookService.ProcessWebhookEvent(req, payload, signatureHeader)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error processing webhook event: [%v]", err), log.Data{"service_response_type": responseType.String()})
		switch responseType {
		case service.InvalidData:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
			return
		default:
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	// Notify downstream fulfilment of completed checkouts. A production
	// failure is logged but never fails the acknowledgement - the provider
	// would otherwise redeliver an event we have fully recorded.
	if result.Completed && responseType != service.Duplicate {
		if err = handleCheckoutMessage(result.SessionID, result.PaymentStatus); err != nil {
			log.ErrorR(req, fmt.Errorf("error producing checkout completed message: [%v]", err), log.Data{"session_id": result.SessionID})
		}
	}

	utils.WriteJSONWithStatus(w, req, models.WebhookAckRest{Received: true}, http.StatusOK)

	log.InfoR(req, "Successfully processed webhook event", log.Data{"event_type": result.EventType, "event_id": result.EventID})
}
