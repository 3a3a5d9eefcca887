package handlers

import (
	"net/http"
	"os"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/checkout.api.ch.gov.uk/service"
	"github.com/companieshouse/checkout.api.ch.gov.uk/utils"
	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"
)

var checkoutService *service.CheckoutService
var webhookService *service.WebhookService
var refundService *service.RefundService

// Register defines the route mappings for the main router and it's subrouters
func Register(mainRouter *mux.Router, cfg config.Config, m dao.DAO) {
	stripeService := &service.StripeService{
		Client: service.NewStripeSDK(&cfg),
		Config: cfg,
	}

	payPalService := &service.PayPalService{Config: cfg}

	// The PayPal client authenticates eagerly, so it is only dialled when the
	// integration is configured. Requests selecting paypal without it fail per request.
	if cfg.PaypalClientID != "" {
		payPalClient, err := service.GetPayPalClient(cfg)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		payPalService.Client = payPalClient
	}

	checkoutService = &service.CheckoutService{
		DAO:    m,
		Config: cfg,
		Stripe: stripeService,
		PayPal: payPalService,
	}

	webhookService = &service.WebhookService{
		DAO:    m,
		Config: cfg,
	}

	refundService = &service.RefundService{
		CheckoutService: checkoutService,
		DAO:             m,
		Config:          cfg,
	}

	mainRouter.HandleFunc("/", handleHealthCheck).Methods("GET").Name("get-health")
	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	// Create subrouters so that each endpoint group can carry its own middleware.

	createRouter := mainRouter.PathPrefix("/create-checkout-session").Subrouter()
	createRouter.HandleFunc("", HandleCreateCheckoutSession).Methods("POST").Name("create-checkout-session")

	statusRouter := mainRouter.PathPrefix("/session-status").Subrouter()
	statusRouter.HandleFunc("", HandleGetSessionStatus).Methods("GET").Name("get-session-status")

	// The webhook endpoint is authenticated by its signature header, not by caller
	// identity, so it carries logging middleware only.
	webhookRouter := mainRouter.PathPrefix("/webhook").Subrouter()
	webhookRouter.HandleFunc("", HandleWebhook).Methods("POST").Name("handle-webhook")

	sessionRouter := mainRouter.PathPrefix("/checkout-sessions/{session_id}").Subrouter()
	sessionRouter.HandleFunc("", HandleGetCheckoutSession).Methods("GET").Name("get-checkout-session")
	sessionRouter.HandleFunc("/capture", HandleCaptureCheckoutSession).Methods("POST").Name("capture-checkout-session")
	sessionRouter.HandleFunc("/refunds", HandleCreateRefund).Methods("POST").Name("create-refund")

	// Set middleware for subrouters
	createRouter.Use(log.Handler)
	statusRouter.Use(log.Handler)
	webhookRouter.Use(log.Handler)
	sessionRouter.Use(log.Handler)
}

func handleHealthCheck(w http.ResponseWriter, req *http.Request) {
	utils.WriteJSONWithStatus(w, req, models.HealthCheckRest{Message: "checkout api is running"}, http.StatusOK)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
