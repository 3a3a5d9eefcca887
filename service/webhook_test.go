package service

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/dao"
	"github.com/companieshouse/checkout.api.ch.gov.uk/fixtures"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"
)

const webhookSigningSecret = "whsec_test_secret"

func createMockWebhookService(mockDAO *dao.MockDAO, signingSecret string) WebhookService {
	cfg, _ := config.Get()
	webhookCfg := *cfg
	webhookCfg.StripeWebhookSecret = signingSecret
	return WebhookService{DAO: mockDAO, Config: webhookCfg}
}

func TestUnitProcessWebhookEvent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	req := httptest.NewRequest("POST", "/webhook", nil)

	Convey("Invalid signature header is rejected", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_123", EventCheckoutSessionCompleted, "cs_123")

		result, responseType, err := service.ProcessWebhookEvent(req, payload, "t=123,v1=bad-signature")
		So(result, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Signature signed with the wrong secret is rejected", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_123", EventCheckoutSessionCompleted, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, "whsec_wrong_secret", time.Now())

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(result, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err, ShouldNotBeNil)
	})

	Convey("Valid checkout session completed event patches the checkout record", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_123", EventCheckoutSessionCompleted, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_123").Return(false, nil)

		var patchedUpdate *models.CheckoutResourceDB
		mockDAO.EXPECT().PatchCheckoutResource("cs_123", gomock.Any()).DoAndReturn(func(id string, update *models.CheckoutResourceDB) error {
			patchedUpdate = update
			return nil
		})

		var recordedEvent *models.WebhookEventDB
		mockDAO.EXPECT().CreateWebhookEvent(gomock.Any()).DoAndReturn(func(event *models.WebhookEventDB) error {
			recordedEvent = event
			return nil
		})

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(result.EventID, ShouldEqual, "evt_123")
		So(result.EventType, ShouldEqual, EventCheckoutSessionCompleted)
		So(result.SessionID, ShouldEqual, "cs_123")
		So(result.PaymentStatus, ShouldEqual, "paid")
		So(result.Completed, ShouldBeTrue)
		So(patchedUpdate.Data.Status, ShouldEqual, Complete.String())
		So(patchedUpdate.Data.PaymentStatus, ShouldEqual, "paid")
		So(patchedUpdate.ExternalPaymentID, ShouldEqual, "pi_123")
		So(recordedEvent.ID, ShouldEqual, "evt_123")
		So(recordedEvent.Type, ShouldEqual, EventCheckoutSessionCompleted)
	})

	Convey("Already processed event is reported as a duplicate", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_123", EventCheckoutSessionCompleted, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_123").Return(true, nil)

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Duplicate.String())
		So(result.EventID, ShouldEqual, "evt_123")
		So(result.Completed, ShouldBeFalse)
	})

	Convey("Error checking webhook event in database", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_123", EventCheckoutSessionCompleted, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_123").Return(false, errors.New("error"))

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(result, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Error.String())
		So(err.Error(), ShouldEqual, "error checking webhook event in database: [error]")
	})

	Convey("Expired event closes the checkout record", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_124", EventCheckoutSessionExpired, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_124").Return(false, nil)

		var patchedUpdate *models.CheckoutResourceDB
		mockDAO.EXPECT().PatchCheckoutResource("cs_123", gomock.Any()).DoAndReturn(func(id string, update *models.CheckoutResourceDB) error {
			patchedUpdate = update
			return nil
		})
		mockDAO.EXPECT().CreateWebhookEvent(gomock.Any()).Return(nil)

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(result.Completed, ShouldBeFalse)
		So(patchedUpdate.Data.Status, ShouldEqual, Expired.String())
	})

	Convey("Async payment failure marks the checkout record failed", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_127", EventCheckoutAsyncPaymentFailed, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_127").Return(false, nil)

		var patchedUpdate *models.CheckoutResourceDB
		mockDAO.EXPECT().PatchCheckoutResource("cs_123", gomock.Any()).DoAndReturn(func(id string, update *models.CheckoutResourceDB) error {
			patchedUpdate = update
			return nil
		})
		mockDAO.EXPECT().CreateWebhookEvent(gomock.Any()).Return(nil)

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(result.Completed, ShouldBeFalse)
		So(patchedUpdate.Data.Status, ShouldEqual, Failed.String())
	})

	Convey("Error patching checkout resource", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_123", EventCheckoutSessionCompleted, "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_123").Return(false, nil)
		mockDAO.EXPECT().PatchCheckoutResource("cs_123", gomock.Any()).Return(errors.New("error"))

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(result, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Error.String())
		So(err.Error(), ShouldEqual, "error patching checkout resource on database: [error]")
	})

	Convey("Unhandled event type is acknowledged and ignored", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, webhookSigningSecret)

		payload := fixtures.GetSessionEventPayload("evt_125", "payment_intent.created", "cs_123")
		signatureHeader := fixtures.GenerateSignatureHeader(payload, webhookSigningSecret, time.Now())

		mockDAO.EXPECT().WebhookEventExists("evt_125").Return(false, nil)
		mockDAO.EXPECT().CreateWebhookEvent(gomock.Any()).Return(nil)

		result, responseType, err := service.ProcessWebhookEvent(req, payload, signatureHeader)
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(result.Completed, ShouldBeFalse)
		So(result.SessionID, ShouldBeEmpty)
	})

	Convey("With no signing secret configured the payload is parsed unverified", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, "")

		payload := fixtures.GetSessionEventPayload("evt_126", EventCheckoutSessionCompleted, "cs_123")

		mockDAO.EXPECT().WebhookEventExists("evt_126").Return(false, nil)
		mockDAO.EXPECT().PatchCheckoutResource("cs_123", gomock.Any()).Return(nil)
		mockDAO.EXPECT().CreateWebhookEvent(gomock.Any()).Return(nil)

		result, responseType, err := service.ProcessWebhookEvent(req, payload, "")
		So(err, ShouldBeNil)
		So(responseType.String(), ShouldEqual, Success.String())
		So(result.Completed, ShouldBeTrue)
	})

	Convey("Malformed payload with no signing secret is rejected", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		service := createMockWebhookService(mockDAO, "")

		result, responseType, err := service.ProcessWebhookEvent(req, []byte("not-json"), "")
		So(result, ShouldBeNil)
		So(responseType.String(), ShouldEqual, InvalidData.String())
		So(err, ShouldNotBeNil)
	})
}
