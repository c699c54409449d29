package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// GoChannelPublisher is the default in-process event bus. Events are also
// consumed by an audit subscriber that logs every published event, so a
// deployment without Kafka still has an event trail.
type GoChannelPublisher struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
	cancel context.CancelFunc
}

func NewGoChannelPublisher(logger *slog.Logger) (*GoChannelPublisher, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)

	ctx, cancel := context.WithCancel(context.Background())
	p := &GoChannelPublisher{pubsub: pubsub, logger: logger, cancel: cancel}

	for _, topic := range []string{TopicAppointments, TopicUsers, TopicContact} {
		messages, err := pubsub.Subscribe(ctx, topic)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		go p.audit(topic, messages)
	}

	return p, nil
}

func (p *GoChannelPublisher) audit(topic string, messages <-chan *message.Message) {
	for msg := range messages {
		var event Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			p.logger.Warn("unreadable event payload", "topic", topic, "error", err)
			msg.Ack()
			continue
		}
		p.logger.Info("event published",
			"topic", topic,
			"event_id", event.ID,
			"event_type", event.Type,
		)
		msg.Ack()
	}
}

func (p *GoChannelPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.SetContext(ctx)

	if err := p.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *GoChannelPublisher) Close() error {
	p.cancel()
	return p.pubsub.Close()
}

// KafkaEventPublisher publishes events to Kafka for external consumers.
type KafkaEventPublisher struct {
	publisher *kafka.Publisher
}

func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return &KafkaEventPublisher{publisher: publisher}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}
