package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/Trang-1707/shoppi-backend/pkg/db/models"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/Trang-1707/shoppi-backend/pkg/mailer"
	"github.com/google/uuid"
)

// BuyerLookup resolves buyer contact details for outbound mail.
type BuyerLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Worker consumes notification events and delivers confirmation email.
type Worker struct {
	subscriber *gcppubsub.Subscriber
	buyers     BuyerLookup
	sender     mailer.Sender
	logg       *logger.Logger
}

// NewWorker builds the notification worker with its required dependencies.
func NewWorker(subscriber *gcppubsub.Subscriber, buyers BuyerLookup, sender mailer.Sender, logg *logger.Logger) (*Worker, error) {
	if subscriber == nil {
		return nil, fmt.Errorf("subscriber required")
	}
	if buyers == nil {
		return nil, fmt.Errorf("buyer lookup required")
	}
	if sender == nil {
		return nil, fmt.Errorf("mail sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Worker{subscriber: subscriber, buyers: buyers, sender: sender, logg: logg}, nil
}

// Run blocks consuming the subscription until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	return w.subscriber.Receive(ctx, func(ctx context.Context, msg *gcppubsub.Message) {
		if msg.Attributes["event_type"] != EventTypeOrderPlaced {
			// unknown events are acked so they do not redeliver forever
			msg.Ack()
			return
		}
		if err := w.handleOrderPlaced(ctx, msg.Data); err != nil {
			w.logg.Error(ctx, "handling order placed event", err)
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (w *Worker) handleOrderPlaced(ctx context.Context, data []byte) error {
	var event OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decoding event: %w", err)
	}

	buyer, err := w.buyers.FindByID(ctx, event.BuyerID)
	if err != nil {
		return fmt.Errorf("loading buyer %s: %w", event.BuyerID, err)
	}

	subject, plain, html := ComposeOrderConfirmation(buyer.Name, event)
	return w.sender.Send(ctx, mailer.Message{
		ToEmail:   buyer.Email,
		ToName:    buyer.Name,
		Subject:   subject,
		PlainBody: plain,
		HTMLBody:  html,
	})
}

// ComposeOrderConfirmation renders the confirmation email for an event.
func ComposeOrderConfirmation(buyerName string, event OrderPlacedEvent) (subject, plain, html string) {
	subject = fmt.Sprintf("Order confirmed: tracking code %s", event.TrackingCode)
	total := float64(event.TotalCents) / 100
	plain = fmt.Sprintf(
		"Hi %s,\n\nYour order has been placed.\nTracking code: %s\nTotal: %.2f\n\nThank you for shopping with us.",
		buyerName, event.TrackingCode, total,
	)
	html = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order has been placed.</p><p>Tracking code: <strong>%s</strong><br/>Total: %.2f</p><p>Thank you for shopping with us.</p>",
		buyerName, event.TrackingCode, total,
	)
	return subject, plain, html
}
