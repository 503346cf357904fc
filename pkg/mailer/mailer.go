package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Trang-1707/shoppi-backend/pkg/config"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single outbound email.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	PlainBody string
	HTMLBody string
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client sends mail through Sendgrid.
type Client struct {
	sg       *sendgrid.Client
	from     *mail.Email
	disabled bool
	logg     *logger.Logger
}

// New builds a Sendgrid-backed sender. With no API key configured the client
// runs disabled and logs instead of sending, which keeps dev environments
// working without credentials.
func New(cfg config.SendgridConfig, logg *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return &Client{disabled: true, logg: logg}, nil
	}
	if cfg.DefaultFrom == "" {
		return nil, errors.New("sendgrid from email is required when an api key is set")
	}
	return &Client{
		sg:   sendgrid.NewSendClient(cfg.APIKey),
		from: mail.NewEmail(cfg.FromName, cfg.DefaultFrom),
		logg: logg,
	}, nil
}

// Send delivers the message, or logs it when the client is disabled.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.disabled {
		if c.logg != nil {
			ctx = c.logg.WithField(ctx, "to", msg.ToEmail)
			c.logg.Info(ctx, "mailer disabled, skipping email: "+msg.Subject)
		}
		return nil
	}

	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	email := mail.NewSingleEmail(c.from, msg.Subject, to, msg.PlainBody, msg.HTMLBody)

	resp, err := c.sg.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
