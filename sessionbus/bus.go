// Package sessionbus carries session observations from the host's
// authentication backend to embedded cards over an in-process pub/sub
// channel. It implements the card's SessionSource contract.
package sessionbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/nfrund/authcard"
)

// Topic is the watermill topic session observations travel on.
const Topic = "session.observation"

// Bus is an in-memory session observation stream backed by watermill's
// GoChannel. The host publishes one observation per session change; every
// subscribed card receives every tick.
type Bus struct {
	pub    message.Publisher
	sub    message.Subscriber
	logger watermill.LoggerAdapter
}

// New creates an in-memory bus.
func New() *Bus {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return &Bus{
		pub:    goChannel,
		sub:    goChannel,
		logger: logger,
	}
}

// Publish emits one observation tick to every subscriber.
func (b *Bus) Publish(obs authcard.Observation) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshaling session observation: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("publishing session observation: %w", err)
	}
	return nil
}

// Subscribe implements authcard.SessionSource. Each published observation
// is decoded and handed to fn until ctx is cancelled. Delivery is
// fire-and-forget: messages are always acked, and undecodable payloads are
// logged and skipped.
func (b *Bus) Subscribe(ctx context.Context, fn func(authcard.Observation)) error {
	messages, err := b.sub.Subscribe(ctx, Topic)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", Topic, err)
	}

	go func() {
		for msg := range messages {
			var obs authcard.Observation
			if err := json.Unmarshal(msg.Payload, &obs); err != nil {
				slog.Warn("dropping malformed session observation", "error", err)
				msg.Ack()
				continue
			}
			fn(obs)
			msg.Ack()
		}
	}()
	return nil
}

// Close shuts the underlying channel down; subscribers drain and stop.
func (b *Bus) Close() error {
	if closer, ok := b.pub.(*gochannel.GoChannel); ok {
		return closer.Close()
	}
	return nil
}
