package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/boticaviva/backend/pkg/config"
	"github.com/boticaviva/backend/pkg/logger"
)

var errProjectIDRequired = errors.New("gcp project id is required")

// OrderEvent is the payload published when an order is created or advanced.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderCode string    `json:"order_code"`
	Status    string    `json:"status"`
	Total     string    `json:"total,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventOrderCreated  = "order.created"
	EventOrderAdvanced = "order.advanced"
)

// Publisher is the best-effort event sink consumed by the order service.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// Client publishes storefront events to Cloud Pub/Sub.
type Client struct {
	client *pubsub.Client
	topic  string
}

// NewClient creates a Pub/Sub client bound to the configured orders topic.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.PubSubConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return nil, errProjectIDRequired
	}

	psClient, err := pubsub.NewClient(ctx, gcp.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "pubsub client initialized")
	}

	return &Client{client: psClient, topic: cfg.OrdersTopic}, nil
}

// PublishOrderEvent sends the event to the orders topic and waits for the
// server ack. Callers treat failures as non-fatal.
func (c *Client) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if c == nil || c.client == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding order event: %w", err)
	}

	publisher := c.client.Publisher(c.topic)
	defer publisher.Stop()

	result := publisher.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"type": event.Type},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publishing order event: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// NoopPublisher drops every event. Used when Pub/Sub is not configured.
type NoopPublisher struct{}

// PublishOrderEvent implements Publisher.
func (NoopPublisher) PublishOrderEvent(context.Context, OrderEvent) error {
	return nil
}
