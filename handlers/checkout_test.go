package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/fixtures"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/checkout.api.ch.gov.uk/service"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/plutov/paypal/v4"
	. "github.com/smartystreets/goconvey/convey"
	stripe "github.com/stripe/stripe-go/v81"
)

func setUpTestServices(mockCtrl *gomock.Controller) (*dao.MockDAO, *service.MockStripeSDK) {
	cfg, _ := config.Get()
	mockDAO := dao.NewMockDAO(mockCtrl)
	mockStripeSDK := service.NewMockStripeSDK(mockCtrl)

	checkoutService = &service.CheckoutService{
		DAO:    mockDAO,
		Config: *cfg,
		Stripe: &service.StripeService{Client: mockStripeSDK, Config: *cfg},
		PayPal: &service.PayPalService{Config: *cfg},
	}
	webhookService = &service.WebhookService{DAO: mockDAO, Config: *cfg}
	refundService = &service.RefundService{
		CheckoutService: checkoutService,
		DAO:             mockDAO,
		Config:          *cfg,
	}

	return mockDAO, mockStripeSDK
}

func TestUnitHandleCreateCheckoutSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	Convey("Request body empty", t, func() {
		setUpTestServices(mockCtrl)

		req, _ := http.NewRequest("POST", "/create-checkout-session", nil)
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Request body invalid", t, func() {
		setUpTestServices(mockCtrl)

		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader("not-json"))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Missing customer email returns bad request", t, func() {
		setUpTestServices(mockCtrl)

		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(`{"amount":10.50}`))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Missing amount returns bad request", t, func() {
		setUpTestServices(mockCtrl)

		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(`{"customerEmail":"customer@example.com"}`))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Provider error returns bad request with message", t, func() {
		_, mockStripeSDK := setUpTestServices(mockCtrl)
		mockStripeSDK.EXPECT().CreateCheckoutSession(gomock.Any()).Return(nil, errors.New("error"))

		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(`{"amount":10.50,"customerEmail":"customer@example.com"}`))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "error creating checkout session with stripe")
	})

	Convey("Paypal request without the integration configured returns bad request", t, func() {
		setUpTestServices(mockCtrl)

		body := `{"amount":10.50,"customerEmail":"customer@example.com","paymentMethod":"paypal"}`
		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(body))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "paypal integration is not configured")
	})

	Convey("Successfully create an embedded checkout session", t, func() {
		mockDAO, mockStripeSDK := setUpTestServices(mockCtrl)
		mockStripeSDK.EXPECT().CreateCheckoutSession(gomock.Any()).Return(fixtures.GetCheckoutSession("cs_123", "", "cs_123_secret"), nil)
		mockDAO.EXPECT().CreateCheckoutResource(gomock.Any()).Return(nil)

		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(`{"amount":10.50,"customerEmail":"customer@example.com"}`))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusOK)

		var responseBody models.CheckoutSessionRest
		So(json.NewDecoder(w.Body).Decode(&responseBody), ShouldBeNil)
		So(responseBody.SessionID, ShouldEqual, "cs_123")
		So(responseBody.ClientSecret, ShouldEqual, "cs_123_secret")
	})

	Convey("Successfully create a hosted checkout session", t, func() {
		mockDAO, mockStripeSDK := setUpTestServices(mockCtrl)
		mockStripeSDK.EXPECT().CreateCheckoutSession(gomock.Any()).Return(fixtures.GetCheckoutSession("cs_123", "https://checkout.stripe.com/pay/cs_123", ""), nil)
		mockDAO.EXPECT().CreateCheckoutResource(gomock.Any()).Return(nil)

		body := `{"amount":10.50,"customerEmail":"customer@example.com","successUrl":"https://example.com/success"}`
		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(body))
		w := httptest.NewRecorder()
		HandleCreateCheckoutSession(w, req)
		So(w.Code, ShouldEqual, http.StatusOK)

		var responseBody models.CheckoutSessionRest
		So(json.NewDecoder(w.Body).Decode(&responseBody), ShouldBeNil)
		So(responseBody.SessionID, ShouldEqual, "cs_123")
		So(responseBody.URL, ShouldEqual, "https://checkout.stripe.com/pay/cs_123")
	})
}

func TestUnitHandleGetSessionStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	Convey("No session_id supplied", t, func() {
		setUpTestServices(mockCtrl)

		req := httptest.NewRequest("GET", "/session-status", nil)
		w := httptest.NewRecorder()
		HandleGetSessionStatus(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(w.Body.String(), ShouldContainSubstring, "session_id is required")
	})

	Convey("Provider error returns bad request", t, func() {
		mockDAO, mockStripeSDK := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(nil, nil)
		mockStripeSDK.EXPECT().GetCheckoutSession("cs_123", gomock.Any()).Return(nil, errors.New("error"))

		req := httptest.NewRequest("GET", "/session-status?session_id=cs_123", nil)
		w := httptest.NewRecorder()
		HandleGetSessionStatus(w, req)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Successfully get session status", t, func() {
		mockDAO, mockStripeSDK := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(nil, nil)

		checkoutSession := fixtures.GetCheckoutSession("cs_123", "", "")
		checkoutSession.Status = stripe.CheckoutSessionStatusComplete
		checkoutSession.PaymentStatus = stripe.CheckoutSessionPaymentStatusPaid
		mockStripeSDK.EXPECT().GetCheckoutSession("cs_123", gomock.Any()).Return(checkoutSession, nil)

		req := httptest.NewRequest("GET", "/session-status?session_id=cs_123", nil)
		w := httptest.NewRecorder()
		HandleGetSessionStatus(w, req)
		So(w.Code, ShouldEqual, http.StatusOK)

		var responseBody models.SessionStatusRest
		So(json.NewDecoder(w.Body).Decode(&responseBody), ShouldBeNil)
		So(responseBody.Status, ShouldEqual, "complete")
		So(responseBody.PaymentStatus, ShouldEqual, "paid")
		So(responseBody.CustomerEmail, ShouldEqual, "customer@example.com")
		So(responseBody.Amount, ShouldEqual, "10.50")
	})
}

func serveSessionRoute(method, path, routePath string, handler http.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()

	router := mux.NewRouter()
	router.HandleFunc(routePath, handler).Methods(method)
	router.ServeHTTP(w, req)
	return w
}

func TestUnitHandleGetCheckoutSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	Convey("Checkout resource not found", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(nil, nil)

		w := serveSessionRoute("GET", "/checkout-sessions/cs_123", "/checkout-sessions/{session_id}", HandleGetCheckoutSession)
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Database error returns internal server error", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(nil, errors.New("error"))

		w := serveSessionRoute("GET", "/checkout-sessions/cs_123", "/checkout-sessions/{session_id}", HandleGetCheckoutSession)
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})

	Convey("Successfully get checkout resource", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(&models.CheckoutResourceDB{
			ID:            "cs_123",
			PaymentMethod: service.PaymentMethodStripe,
			Data: models.CheckoutResourceDataDB{
				Amount: "10.50",
				Status: service.Complete.String(),
			},
		}, nil)

		w := serveSessionRoute("GET", "/checkout-sessions/cs_123", "/checkout-sessions/{session_id}", HandleGetCheckoutSession)
		So(w.Code, ShouldEqual, http.StatusOK)

		var responseBody models.CheckoutResourceRest
		So(json.NewDecoder(w.Body).Decode(&responseBody), ShouldBeNil)
		So(responseBody.SessionID, ShouldEqual, "cs_123")
		So(responseBody.Amount, ShouldEqual, "10.50")
		So(responseBody.Status, ShouldEqual, service.Complete.String())
	})
}

func TestUnitHandleCaptureCheckoutSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	defer func() {
		handleCheckoutMessage = produceCheckoutMessage
	}()

	Convey("Checkout session not found", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("ORDER-123").Return(nil, nil)

		w := serveSessionRoute("POST", "/checkout-sessions/ORDER-123/capture", "/checkout-sessions/{session_id}/capture", HandleCaptureCheckoutSession)
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Stripe session returns bad request", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(&models.CheckoutResourceDB{
			ID:            "cs_123",
			PaymentMethod: service.PaymentMethodStripe,
			Data:          models.CheckoutResourceDataDB{Status: service.Open.String()},
		}, nil)

		w := serveSessionRoute("POST", "/checkout-sessions/cs_123/capture", "/checkout-sessions/{session_id}/capture", HandleCaptureCheckoutSession)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Successfully capture an approved paypal session", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockPayPalSDK := service.NewMockPayPalSDK(mockCtrl)
		checkoutService.PayPal.Client = mockPayPalSDK

		var messageSessionID, messagePaymentStatus string
		handleCheckoutMessage = func(sessionID string, paymentStatus string) error {
			messageSessionID = sessionID
			messagePaymentStatus = paymentStatus
			return nil
		}

		mockDAO.EXPECT().GetCheckoutResource("ORDER-123").Return(&models.CheckoutResourceDB{
			ID:            "ORDER-123",
			PaymentMethod: service.PaymentMethodPayPal,
			Data: models.CheckoutResourceDataDB{
				Amount:        "10.50",
				CustomerEmail: "customer@example.com",
				Status:        service.Open.String(),
			},
		}, nil)

		capture := &paypal.CaptureOrderResponse{
			ID:     "ORDER-123",
			Status: paypal.OrderStatusCompleted,
			PurchaseUnits: []paypal.CapturedPurchaseUnit{
				{
					Payments: &paypal.CapturedPayments{
						Captures: []paypal.CaptureAmount{{ID: "CAPTURE-123"}},
					},
				},
			},
		}
		mockPayPalSDK.EXPECT().CaptureOrder(gomock.Any(), "ORDER-123", gomock.Any()).Return(capture, nil)
		mockDAO.EXPECT().PatchCheckoutResource("ORDER-123", gomock.Any()).Return(nil)

		w := serveSessionRoute("POST", "/checkout-sessions/ORDER-123/capture", "/checkout-sessions/{session_id}/capture", HandleCaptureCheckoutSession)
		So(w.Code, ShouldEqual, http.StatusOK)

		var responseBody models.SessionStatusRest
		So(json.NewDecoder(w.Body).Decode(&responseBody), ShouldBeNil)
		So(responseBody.Status, ShouldEqual, service.Complete.String())
		So(responseBody.PaymentStatus, ShouldEqual, "paid")
		So(messageSessionID, ShouldEqual, "ORDER-123")
		So(messagePaymentStatus, ShouldEqual, "paid")
	})
}

func serveHandleCreateRefund(body *strings.Reader, sessionID string) *httptest.ResponseRecorder {
	path := "/checkout-sessions/" + sessionID + "/refunds"
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest("POST", path, body)
	} else {
		req = httptest.NewRequest("POST", path, nil)
	}
	w := httptest.NewRecorder()

	router := mux.NewRouter()
	router.HandleFunc("/checkout-sessions/{session_id}/refunds", HandleCreateRefund).Methods("POST")
	router.ServeHTTP(w, req)
	return w
}

func TestUnitHandleCreateRefund(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	Convey("Checkout session not found", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(nil, nil)

		w := serveHandleCreateRefund(nil, "cs_123")
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Unpaid checkout session returns bad request", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(&models.CheckoutResourceDB{
			ID:            "cs_123",
			PaymentMethod: service.PaymentMethodStripe,
			Data:          models.CheckoutResourceDataDB{Status: service.Open.String()},
		}, nil)

		w := serveHandleCreateRefund(nil, "cs_123")
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Database error returns internal server error", t, func() {
		mockDAO, _ := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(nil, errors.New("error"))

		w := serveHandleCreateRefund(nil, "cs_123")
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})

	Convey("Successfully create a refund", t, func() {
		mockDAO, mockStripeSDK := setUpTestServices(mockCtrl)
		mockDAO.EXPECT().GetCheckoutResource("cs_123").Return(&models.CheckoutResourceDB{
			ID:                "cs_123",
			PaymentMethod:     service.PaymentMethodStripe,
			ExternalPaymentID: "pi_123",
			Data: models.CheckoutResourceDataDB{
				Amount: "10.50",
				Status: service.Complete.String(),
			},
		}, nil)
		mockStripeSDK.EXPECT().CreateRefund(gomock.Any()).Return(&stripe.Refund{ID: "re_123", Amount: 550, Status: stripe.RefundStatusSucceeded}, nil)
		mockDAO.EXPECT().PatchCheckoutResource("cs_123", gomock.Any()).Return(nil)

		w := serveHandleCreateRefund(strings.NewReader(`{"amount":5.50}`), "cs_123")
		So(w.Code, ShouldEqual, http.StatusCreated)

		var responseBody models.RefundRest
		So(json.NewDecoder(w.Body).Decode(&responseBody), ShouldBeNil)
		So(responseBody.RefundID, ShouldEqual, "re_123")
		So(responseBody.Amount, ShouldEqual, "5.50")
		So(responseBody.Status, ShouldEqual, "succeeded")
	})
}
