package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/Trang-1707/shoppi-backend/pkg/pubsub"
)

// Publisher emits order lifecycle events for the notification worker.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

type pubsubPublisher struct {
	publisher *gcppubsub.Publisher
}

// NewPublisher builds a Pub/Sub-backed publisher on the notification topic.
func NewPublisher(client *pubsub.Client) (Publisher, error) {
	if client == nil {
		return nil, fmt.Errorf("pubsub client required")
	}
	publisher := client.NotificationPublisher()
	if publisher == nil {
		return nil, fmt.Errorf("notification topic not configured")
	}
	return &pubsubPublisher{publisher: publisher}, nil
}

func (p *pubsubPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	result := p.publisher.Publish(ctx, &gcppubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event_type": EventTypeOrderPlaced},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}
	return nil
}
