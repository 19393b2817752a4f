package email

import (
	"context"
	"fmt"
	"log"
	"strings"
	"text/template"

	"github.com/scenicairways/backend/internal/kafka"
)

// Sender renders booking notification emails. Delivery is a log write;
// the transport behind it is a deployment concern, not part of the
// booking flow.
type Sender struct {
	from string
}

func NewSender(from string) *Sender {
	return &Sender{from: from}
}

var bodies = template.Must(template.New("bodies").Funcs(template.FuncMap{
	"join": func(seats []string) string { return strings.Join(seats, ", ") },
}).Parse(`
{{define "booking_created"}}Dear {{.Passenger}},

Your booking {{.BookingID}} on flight {{.FlightID}} is confirmed for seats {{join .Seats}}.
Present the attached QR code ({{.QRCode}}) at the gate.{{end}}

{{define "booking_status_updated"}}Dear {{.Passenger}},

Your booking {{.BookingID}} on flight {{.FlightID}} is now {{.Status}}.{{end}}

{{define "booking_cancelled"}}Dear {{.Passenger}},

Your booking {{.BookingID}} on flight {{.FlightID}} has been cancelled.
Seats {{join .Seats}} have been released.{{end}}
`))

func (s *Sender) Send(ctx context.Context, event kafka.NotificationEvent) error {
	subject := subjectFor(event)
	body, err := renderBody(event)
	if err != nil {
		return err
	}
	log.Printf("email from=%s to=%s subject=%q\n%s", s.from, event.Email, subject, body)
	return nil
}

func subjectFor(event kafka.NotificationEvent) string {
	switch event.Type {
	case "booking_created":
		return fmt.Sprintf("Booking confirmation %s", event.BookingID)
	case "booking_status_updated":
		return fmt.Sprintf("Booking %s status update", event.BookingID)
	case "booking_cancelled":
		return fmt.Sprintf("Booking %s cancelled", event.BookingID)
	default:
		return fmt.Sprintf("Booking %s", event.BookingID)
	}
}

func renderBody(event kafka.NotificationEvent) (string, error) {
	tmpl := bodies.Lookup(event.Type)
	if tmpl == nil {
		return "", fmt.Errorf("no email template for event type %q", event.Type)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, event); err != nil {
		return "", fmt.Errorf("render email body: %w", err)
	}
	return sb.String(), nil
}
