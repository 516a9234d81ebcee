package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"somnolent/internal/config"
	"somnolent/internal/credentials"
	"somnolent/internal/model"

	"cloud.google.com/go/pubsub"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher for the configured GCP project.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	projectID := cfg.GetGCPProjectID()
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is required for Pub/Sub")
	}
	opts, err := credentials.ServiceAccountFromConfig(cfg).ClientOptions()
	if err != nil {
		return nil, err
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload, Attributes: attrs})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// CreditEventPublisher encodes credit events as JSON messages on one topic.
type CreditEventPublisher struct {
	pub   Publisher
	topic string
}

func NewCreditEventPublisher(pub Publisher, topic string) *CreditEventPublisher {
	return &CreditEventPublisher{pub: pub, topic: topic}
}

// PublishCreditEvent publishes ev with its type and user as message attributes.
func (p *CreditEventPublisher) PublishCreditEvent(ctx context.Context, ev model.CreditEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding credit event %s: %w", ev.ID, err)
	}
	attrs := map[string]string{"type": ev.Type, "user_id": ev.UserID}
	if _, err := p.pub.Publish(ctx, p.topic, payload, attrs); err != nil {
		return err
	}
	return nil
}
