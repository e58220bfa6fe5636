package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"barberslot/internal/domain/booking"
	"barberslot/internal/pkg/errs"
)

// legacyStatusLabels maps the closed status enum to the vocabulary the
// pre-existing notification collaborators still speak. The mapping
// lives here, at the boundary, and nowhere else.
var legacyStatusLabels = map[booking.Status]string{
	booking.StatusPending:         "Pendente",
	booking.StatusAwaitingPayment: "Aguardando Pagamento",
	booking.StatusConfirmed:       "Confirmado",
	booking.StatusCompleted:       "Concluído",
	booking.StatusCancelled:       "Cancelado",
}

func LegacyStatusLabel(s booking.Status) string {
	if label, ok := legacyStatusLabels[s]; ok {
		return label
	}
	return s.String()
}

// Envelope is the wire shape delivered to the webhook dispatcher, which
// owns signing and retry beyond the outbox's own schedule.
type Envelope struct {
	Event     string       `json:"event"`
	Timestamp time.Time    `json:"timestamp"`
	Data      EnvelopeData `json:"data"`
}

type EnvelopeData struct {
	BookingID      string    `json:"bookingId"`
	Status         string    `json:"status"`
	StatusLabel    string    `json:"statusLabel"`
	PreviousStatus *string   `json:"previousStatus,omitempty"`
	UserID         string    `json:"userId"`
	BarberID       string    `json:"barberId"`
	ServiceID      string    `json:"serviceId"`
	DateTime       time.Time `json:"dateTime"`
}

func NewEnvelope(event booking.Event) Envelope {
	data := EnvelopeData{
		BookingID:   event.BookingID.String(),
		Status:      event.NewStatus.String(),
		StatusLabel: LegacyStatusLabel(event.NewStatus),
		UserID:      event.UserID.String(),
		BarberID:    event.BarberID.String(),
		ServiceID:   event.ServiceID.String(),
		DateTime:    event.StartAt,
	}
	if event.PreviousStatus != "" {
		prev := event.PreviousStatus.String()
		data.PreviousStatus = &prev
	}
	return Envelope{
		Event:     event.Name,
		Timestamp: event.Timestamp,
		Data:      data,
	}
}

// WebhookSender posts envelopes to the configured dispatcher endpoint.
// A blank URL disables delivery, which keeps local setups quiet.
type WebhookSender struct {
	client *http.Client
	url    string
}

func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (w *WebhookSender) Enabled() bool {
	return w.url != ""
}

func (w *WebhookSender) Send(ctx context.Context, event booking.Event) error {
	if !w.Enabled() {
		return nil
	}

	body, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		return errs.Wrap(err, "failed to marshal envelope")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "webhook request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.New(fmt.Sprintf("webhook returned status %d", resp.StatusCode))
	}
	return nil
}
