package dao

import (
	"context"
	"errors"
	"time"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/checkout.api.ch.gov.uk/models"
	"github.com/companieshouse/chs.go/log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoDBURL)
	var err error
	client, err = mongo.Connect(ctx, clientOptions)

	// assume the caller of this func cannot handle the case where there is no database connection so the prog must
	// crash here as the service cannot continue.
	if err != nil {
		log.Error(err)
		panic(err)
	}

	// check we can connect to the mongodb instance. failure here should result in a crash.
	pingContext, pingCancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer pingCancel()
	err = client.Ping(pingContext, nil)
	if err != nil {
		log.Error(errors.New("ping to mongodb timed out. please check the connection to mongodb and that it is running"))
		panic(err)
	}

	log.Info("connected to mongodb successfully")

	return client
}

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB as the backend driver.
type MongoService struct {
	db                   MongoDatabaseInterface
	CollectionName       string
	EventsCollectionName string
}

// New returns a new MongoService using the provided config
func New(cfg *config.Config) *MongoService {
	database := getMongoDatabase(cfg.MongoDBURL, cfg.Database)
	return &MongoService{
		db:                   database,
		CollectionName:       cfg.Collection,
		EventsCollectionName: cfg.EventsCollection,
	}
}

// CreateCheckoutResource writes a new checkout resource to the DB
func (m *MongoService) CreateCheckoutResource(checkoutResource *models.CheckoutResourceDB) error {
	collection := m.db.Collection(m.CollectionName)
	_, err := collection.InsertOne(context.Background(), checkoutResource)

	return err
}

// GetCheckoutResource gets a checkout resource from the DB
// If the resource is not found in the DB, return nil
func (m *MongoService) GetCheckoutResource(id string) (*models.CheckoutResourceDB, error) {
	var resource models.CheckoutResourceDB

	collection := m.db.Collection(m.CollectionName)
	dbResource := collection.FindOne(context.Background(), bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// PatchCheckoutResource patches a checkout resource in the DB
func (m *MongoService) PatchCheckoutResource(id string, checkoutUpdate *models.CheckoutResourceDB) error {
	collection := m.db.Collection(m.CollectionName)

	patchUpdate := make(bson.M)

	// Patch only these fields
	if checkoutUpdate.Data.Status != "" {
		patchUpdate["data.status"] = checkoutUpdate.Data.Status
	}
	if checkoutUpdate.Data.PaymentStatus != "" {
		patchUpdate["data.payment_status"] = checkoutUpdate.Data.PaymentStatus
	}
	if !checkoutUpdate.Data.CompletedAt.IsZero() {
		patchUpdate["data.completed_at"] = checkoutUpdate.Data.CompletedAt
	}
	if checkoutUpdate.ExternalPaymentID != "" {
		patchUpdate["external_payment_id"] = checkoutUpdate.ExternalPaymentID
	}
	if checkoutUpdate.Refunds != nil {
		patchUpdate["refunds"] = checkoutUpdate.Refunds
	}

	updateCall := bson.M{"$set": patchUpdate}

	_, err := collection.UpdateOne(context.Background(), bson.M{"_id": id}, updateCall)

	return err
}

// CreateWebhookEvent records a processed webhook event in the DB
func (m *MongoService) CreateWebhookEvent(event *models.WebhookEventDB) error {
	collection := m.db.Collection(m.EventsCollectionName)
	_, err := collection.InsertOne(context.Background(), event)

	return err
}

// WebhookEventExists checks whether a webhook event has already been processed
func (m *MongoService) WebhookEventExists(id string) (bool, error) {
	collection := m.db.Collection(m.EventsCollectionName)
	dbEvent := collection.FindOne(context.Background(), bson.M{"_id": id})

	err := dbEvent.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
