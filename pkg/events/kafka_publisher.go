package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tmm-backend/domain"
	"tmm-backend/entities"

	"github.com/IBM/sarama"
	"github.com/gofiber/fiber/v2/log"
)

// Publisher writes order lifecycle events to a Kafka topic. It satisfies
// order.Notifier.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewSyncProducer dials brokers with acks from all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start sarama producer: %w", err)
	}
	return producer, nil
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic, now: time.Now}
}

func (p *Publisher) OrderStatusChanged(_ context.Context, order *entities.Order, previous entities.OrderStatus) error {
	return p.publish(domain.OrderEvent{
		Type:        domain.EventOrderStatusChanged,
		OrderID:     order.ID.String(),
		Status:      string(order.Status),
		PrevStatus:  string(previous),
		TotalAmount: order.TotalAmount,
		OccurredAt:  p.now().UTC(),
	})
}

// publish keys messages by order ID so one order's events stay on one partition.
func (p *Publisher) publish(event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, err)
	}
	log.Infow("order event published", "type", event.Type, "order_id", event.OrderID, "partition", partition, "offset", offset)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
