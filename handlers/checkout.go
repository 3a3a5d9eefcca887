package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/checkout.api.ch.gov.uk/service"
	"github.com/companieshouse/checkout.api.ch.gov.uk/utils"
	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"
)

// HandleCreateCheckoutSession creates a checkout session with the payment
// provider and returns its identifier plus the client-facing URL or secret
func HandleCreateCheckoutSession(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("request body empty"), http.StatusBadRequest)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingCheckoutResourceRequest models.IncomingCheckoutResourceRequest
	err := requestDecoder.Decode(&incomingCheckoutResourceRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("request body invalid"), http.StatusBadRequest)
		return
	}

	// once we've read and decoded request body call the checkout service to handle internal business logic
	checkoutSession, responseType, err := checkoutService.CreateCheckoutSession(req, &incomingCheckoutResourceRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating checkout session: [%v]", err), log.Data{"service_response_type": responseType.String()})
		// provider call failures and validation failures are both surfaced
		// as 400 with the underlying message
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
		return
	}

	utils.WriteJSONWithStatus(w, req, checkoutSession, http.StatusOK)

	log.InfoR(req, "Successful POST request for new checkout session", log.Data{"session_id": checkoutSession.SessionID, "status": http.StatusOK})
}

// HandleGetSessionStatus looks a session up with the payment provider and
// projects a subset of its fields
func HandleGetSessionStatus(w http.ResponseWriter, req *http.Request) {
	sessionID := req.URL.Query().Get("session_id")
	if sessionID == "" {
		log.ErrorR(req, fmt.Errorf("session_id not supplied"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("session_id is required"), http.StatusBadRequest)
		return
	}

	sessionStatus, responseType, err := checkoutService.GetSessionStatus(req, sessionID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting session status: [%v]", err), log.Data{"service_response_type": responseType.String()})
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
		return
	}

	utils.WriteJSONWithStatus(w, req, sessionStatus, http.StatusOK)

	log.InfoR(req, "Successful GET request for session status", log.Data{"session_id": sessionID, "status": sessionStatus.Status})
}

// HandleGetCheckoutSession returns the locally stored checkout record
func HandleGetCheckoutSession(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["session_id"]
	if sessionID == "" {
		log.ErrorR(req, fmt.Errorf("session id not supplied"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("session id not supplied"), http.StatusBadRequest)
		return
	}

	checkoutResource, responseType, err := checkoutService.GetCheckoutResource(sessionID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting checkout resource: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if responseType == service.NotFound {
		log.TraceR(req, "checkout resource not found", log.Data{"session_id": sessionID})
		w.WriteHeader(http.StatusNotFound)
		return
	}

	utils.WriteJSONWithStatus(w, req, checkoutResource, http.StatusOK)

	log.InfoR(req, "Successful GET request for checkout resource", log.Data{"session_id": sessionID})
}

// HandleCaptureCheckoutSession captures the payment behind an approved
// paypal checkout session once the customer returns from the approval journey
func HandleCaptureCheckoutSession(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["session_id"]
	if sessionID == "" {
		log.ErrorR(req, fmt.Errorf("session id not supplied"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("session id not supplied"), http.StatusBadRequest)
		return
	}

	sessionStatus, responseType, err := checkoutService.CaptureCheckoutSession(req, sessionID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error capturing checkout session: [%v]", err), log.Data{"service_response_type": responseType.String()})
		switch responseType {
		case service.InvalidData:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
			return
		case service.NotFound:
			w.WriteHeader(http.StatusNotFound)
			return
		default:
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	// Captured checkouts notify downstream fulfilment the same way completed
	// webhook events do. Failures are logged, never fail the capture response.
	if err = handleCheckoutMessage(sessionID, sessionStatus.PaymentStatus); err != nil {
		log.ErrorR(req, fmt.Errorf("error producing checkout completed message: [%v]", err), log.Data{"session_id": sessionID})
	}

	utils.WriteJSONWithStatus(w, req, sessionStatus, http.StatusOK)

	log.InfoR(req, "Successful POST request to capture checkout session", log.Data{"session_id": sessionID})
}

// HandleCreateRefund initiates a refund from the external provider
func HandleCreateRefund(w http.ResponseWriter, req *http.Request) {
	sessionID := mux.Vars(req)["session_id"]
	if sessionID == "" {
		log.ErrorR(req, fmt.Errorf("session id not supplied"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("session id not supplied"), http.StatusBadRequest)
		return
	}

	var incomingRefundResourceRequest models.CreateRefundRequest
	if req.Body != nil {
		requestDecoder := json.NewDecoder(req.Body)
		// an empty body requests a full refund
		if err := requestDecoder.Decode(&incomingRefundResourceRequest); err != nil && err != io.EOF {
			log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("request body invalid"), http.StatusBadRequest)
			return
		}
	}

	refund, responseType, err := refundService.CreateRefund(req, sessionID, incomingRefundResourceRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating refund resource: [%v]", err), log.Data{"service_response_type": responseType.String()})
		switch responseType {
		case service.InvalidData:
			utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
			return
		case service.NotFound:
			w.WriteHeader(http.StatusNotFound)
			return
		default:
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSONWithStatus(w, req, refund, http.StatusCreated)

	log.InfoR(req, "Successful POST request for new refund", log.Data{"session_id": sessionID, "refund_id": refund.RefundID})
}
