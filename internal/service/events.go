package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

const DefaultTopic = "admin_events"

// EventPublisher is satisfied by mykafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type Event struct {
	Type     string    `json:"type"`
	EntityID int       `json:"entity_id"`
	At       time.Time `json:"at"`
	Data     any       `json:"data,omitempty"`
}

type publisher struct {
	events EventPublisher
	topic  string
}

func newPublisher(events EventPublisher, topic string) publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return publisher{events: events, topic: topic}
}

// publish is best effort: failures are logged and never reach the caller.
func (p publisher) publish(ctx context.Context, typ string, id int, data any) {
	if p.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(logging.Detach(ctx), 5*time.Second)
	defer cancel()

	ev := Event{Type: typ, EntityID: id, At: time.Now().UTC(), Data: data}
	if err := p.events.PublishEvent(ctx, p.topic, strconv.Itoa(id), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "type", typ, "entity_id", id, "error", err)
	}
}
