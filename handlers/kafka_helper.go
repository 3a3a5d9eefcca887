package handlers

import (
	"fmt"

	"github.com/companieshouse/checkout.api.ch.gov.uk/config"
	"github.com/companieshouse/chs.go/avro"
	"github.com/companieshouse/chs.go/avro/schema"
	"github.com/companieshouse/chs.go/kafka/producer"
	"github.com/companieshouse/chs.go/log"
)

// ProducerTopic is the topic to which the checkout completed kafka message is sent
const ProducerTopic = "checkout-completed"

// ProducerSchemaName is the schema which will be used to send the checkout completed kafka message with
const ProducerSchemaName = "checkout-completed"

// checkoutCompleted represents the avro schema registered in the schema registry
type checkoutCompleted struct {
	CheckoutSessionID string `avro:"checkout_session_id"`
	PaymentStatus     string `avro:"payment_status"`
}

// produceCheckoutMessage handles creating a producer, marshalling the session id into the correct avro schema and
// sending the message to the topic defined in ProducerTopic
func produceCheckoutMessage(sessionID string, paymentStatus string) error {
	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("error getting config for kafka message production: [%v]", err)
	}

	if cfg.KafkaDisabled || len(cfg.BrokerAddr) == 0 {
		log.Trace("kafka production disabled - skipping checkout completed message", log.Data{"session_id": sessionID})
		return nil
	}

	// Get a producer
	kafkaProducer, err := producer.New(&producer.Config{Acks: &producer.WaitForAll, BrokerAddrs: cfg.BrokerAddr})
	if err != nil {
		return fmt.Errorf("error creating kafka producer: [%v]", err)
	}
	checkoutCompletedSchema, err := schema.Get(cfg.SchemaRegistryURL, ProducerSchemaName)
	if err != nil {
		return fmt.Errorf("error getting schema from schema registry: [%v]", err)
	}
	producerSchema := &avro.Schema{
		Definition: checkoutCompletedSchema,
	}

	// Prepare a message with the avro schema
	message, err := prepareKafkaMessage(sessionID, paymentStatus, *producerSchema)
	if err != nil {
		return fmt.Errorf("error preparing kafka message with schema: [%v]", err)
	}

	// Send the message
	partition, offset, err := kafkaProducer.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send message in partition: %d at offset %d", partition, offset)
	}
	return nil
}

// prepareKafkaMessage is pulled out of produceCheckoutMessage() to allow unit testing of non-kafka portion of code
func prepareKafkaMessage(sessionID string, paymentStatus string, checkoutCompletedSchema avro.Schema) (*producer.Message, error) {
	checkoutCompletedMessage := checkoutCompleted{CheckoutSessionID: sessionID, PaymentStatus: paymentStatus}

	messageBytes, err := checkoutCompletedSchema.Marshal(checkoutCompletedMessage)
	if err != nil {
		return nil, fmt.Errorf("error marshalling checkout completed message: [%v]", err)
	}

	producerMessage := &producer.Message{
		Value: messageBytes,
		Topic: ProducerTopic,
	}
	return producerMessage, nil
}
