// Package events publishes storefront events to Kafka. Publishing is an
// optional side channel for downstream analytics; the purchase itself never
// depends on it.
package events

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"
)

const CheckoutCompletedTopic = "storefront.checkout.completed"

type CheckoutCompletedEvent struct {
	OrderID   int       `json:"order_id"`
	BillID    int       `json:"bill_id"`
	ClientID  int       `json:"client_id"`
	Total     float64   `json:"total"`
	Lines     int       `json:"lines"`
	EventTime time.Time `json:"event_time"`
}

type Producer struct {
	producer sarama.SyncProducer
	logger   *logrus.Logger
}

func NewProducer(brokers []string, logger *logrus.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer, logger: logger}, nil
}

// PublishCheckoutCompleted sends one event keyed by order id. A nil receiver
// is a no-op so callers without a configured broker need no branching.
func (p *Producer) PublishCheckoutCompleted(event CheckoutCompletedEvent) error {
	if p == nil {
		return nil
	}
	event.EventTime = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: CheckoutCompletedTopic,
		Key:   sarama.StringEncoder(strconv.Itoa(event.OrderID)),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).Error("Failed to publish checkout event")
		return err
	}

	p.logger.WithFields(logrus.Fields{
		"topic":     CheckoutCompletedTopic,
		"partition": partition,
		"offset":    offset,
		"order_id":  event.OrderID,
	}).Info("Checkout event published")
	return nil
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
