// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"sync"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr            string   `env:"BIND_ADDR"               flag:"bind-addr"               flagDesc:"Bind address"`
	Collection          string   `env:"MONGODB_COLLECTION"      flag:"mongodb-collection"      flagDesc:"MongoDB collection for checkout session data"`
	EventsCollection    string   `env:"MONGODB_EVENTS_COLLECTION" flag:"mongodb-events-collection" flagDesc:"MongoDB collection for processed webhook events"`
	Database            string   `env:"MONGODB_DATABASE"        flag:"mongodb-database"        flagDesc:"MongoDB database for data"`
	MongoDBURL          string   `env:"MONGODB_URL"             flag:"mongodb-url"             flagDesc:"MongoDB server URL"`
	StripeAPIKey        string   `env:"STRIPE_API_KEY"          flag:"stripe-api-key"          flagDesc:"Secret API key used to authenticate calls to Stripe"`
	StripeWebhookSecret string   `env:"STRIPE_WEBHOOK_SECRET"   flag:"stripe-webhook-secret"   flagDesc:"Signing secret used to verify Stripe webhook payloads"`
	DefaultCurrency     string   `env:"DEFAULT_CURRENCY"        flag:"default-currency"        flagDesc:"Currency applied when the incoming request omits one"`
	PaypalEnv           string   `env:"PAYPAL_ENV"              flag:"paypal-env"              flagDesc:"PayPal environment - test or live"`
	PaypalClientID      string   `env:"PAYPAL_CLIENT_ID"        flag:"paypal-client-id"        flagDesc:"Client ID used to authenticate API calls with PayPal"`
	PaypalSecret        string   `env:"PAYPAL_SECRET"           flag:"paypal-secret"           flagDesc:"Secret used to authenticate API calls with PayPal"`
	BrokerAddr          []string `env:"KAFKA_BROKER_ADDR"       flag:"broker-addr"             flagDesc:"Kafka broker address"`
	SchemaRegistryURL   string   `env:"SCHEMA_REGISTRY_URL"     flag:"schema-registry-url"     flagDesc:"Schema registry url"`
	KafkaDisabled       bool     `env:"KAFKA_DISABLED"          flag:"kafka-disabled"          flagDesc:"Disable production of checkout-completed messages"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		Database:         "checkouts",
		Collection:       "checkouts",
		EventsCollection: "webhook-events",
		DefaultCurrency:  "usd",
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
