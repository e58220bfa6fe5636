package dispatch

import (
	"context"
	"encoding/json"

	"barberslot/internal/domain/booking"
	"barberslot/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// LivePublisher pushes events onto a redis channel for connected agenda
// views. Delivery is fire-and-forget; a missed publish only delays the
// next poll.
type LivePublisher struct {
	client  *redis.Client
	channel string
}

func NewLivePublisher(client *redis.Client, channel string) *LivePublisher {
	return &LivePublisher{client: client, channel: channel}
}

func (p *LivePublisher) Enabled() bool {
	return p.client != nil && p.channel != ""
}

func (p *LivePublisher) Publish(ctx context.Context, event booking.Event) error {
	if !p.Enabled() {
		return nil
	}

	payload, err := json.Marshal(NewEnvelope(event))
	if err != nil {
		return errs.Wrap(err, "failed to marshal envelope")
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}
