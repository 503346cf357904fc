package notifications

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestComposeOrderConfirmation(t *testing.T) {
	event := OrderPlacedEvent{
		OrderID:      uuid.New(),
		BuyerID:      uuid.New(),
		TrackingCode: "AB12CD34EF",
		TotalCents:   12550,
		OrderDate:    time.Now(),
	}

	subject, plain, html := ComposeOrderConfirmation("Trang", event)

	if !strings.Contains(subject, "AB12CD34EF") {
		t.Fatalf("subject missing tracking code: %q", subject)
	}
	if !strings.Contains(plain, "Trang") || !strings.Contains(plain, "125.50") {
		t.Fatalf("plain body missing fields: %q", plain)
	}
	if !strings.Contains(html, "<strong>AB12CD34EF</strong>") {
		t.Fatalf("html body missing tracking code: %q", html)
	}
}
