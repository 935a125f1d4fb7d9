package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-sol/internal/entity"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/modules"
	"github.com/pixil98/go-sol/internal/registry"
)

// EventSubjectPrefix is followed by the event name, as in
// "sol.events.hero_died".
const EventSubjectPrefix = "sol.events."

// EventSubjectAll matches every game event subject.
const EventSubjectAll = EventSubjectPrefix + ">"

// Publisher provides the ability to publish messages to subjects
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope is the JSON body of every published event.
type Envelope struct {
	Event  string          `json:"event"`
	Entity entity.Ref      `json:"entity"`
	Data   json.RawMessage `json:"data"`
}

// EventModule forwards hero events to the message bus.
type EventModule struct {
	pub Publisher
}

func NewEventModule(pub Publisher) *EventModule {
	return &EventModule{pub: pub}
}

func (m *EventModule) Key() string     { return "events" }
func (m *EventModule) Version() string { return "1.0.0" }

func (m *EventModule) Requires() []modules.Capability {
	return []modules.Capability{modules.CapEntities, modules.CapMessaging}
}

func (m *EventModule) Init(_ context.Context, reg *registry.Registry) error {
	em, ok := registry.Get[*entity.Manager](reg)
	if !ok {
		return fmt.Errorf("entity manager not registered")
	}
	em.Register(entity.AnyEvent, []string{game.HeroComponent{}.ComponentName()}, m.publish)
	return nil
}

func (m *EventModule) publish(ctx context.Context, ev entity.Event, ref entity.Ref) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", ev.EventName(), err)
	}
	body, err := json.Marshal(Envelope{Event: ev.EventName(), Entity: ref, Data: data})
	if err != nil {
		return fmt.Errorf("marshalling envelope: %w", err)
	}

	err = m.pub.Publish(EventSubjectPrefix+ev.EventName(), body)
	if errors.Is(err, ErrNotStarted) {
		slog.DebugContext(ctx, "dropping event before bus start", "event", ev.EventName())
		return nil
	}
	return err
}
