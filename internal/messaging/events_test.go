package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pixil98/go-sol/internal/entity"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/modules"
	"github.com/pixil98/go-sol/internal/registry"
	"github.com/pixil98/go-testutil"
)

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, published{subject: subject, data: data})
	return nil
}

func TestEventModule_Publish(t *testing.T) {
	tests := map[string]struct {
		pubErr     error
		expErr     string
		expSubject string
	}{
		"publishes envelope": {
			expSubject: "sol.events.hero_died",
		},
		"dropped before start": {
			pubErr: ErrNotStarted,
		},
		"publish failure": {
			pubErr: errors.New("connection lost"),
			expErr: "connection lost",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pub := &fakePublisher{err: tt.pubErr}
			reg := registry.New()
			em := entity.NewManager()
			registry.Put(reg, em)

			mm := modules.NewManager(modules.CapEntities, modules.CapMessaging)
			if err := mm.Register(NewEventModule(pub)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err := mm.Init(context.Background(), reg); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ref := em.CreateEntity(game.HeroComponent{})
			err := em.SendEvent(context.Background(), game.HeroDied{CarriedMoney: 75, CarriedItems: 2}, "hero")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expSubject == "" {
				testutil.AssertEqual(t, "published", len(pub.msgs), 0)
				return
			}

			testutil.AssertEqual(t, "published", len(pub.msgs), 1)
			testutil.AssertEqual(t, "subject", pub.msgs[0].subject, tt.expSubject)

			var env Envelope
			if err := json.Unmarshal(pub.msgs[0].data, &env); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "event", env.Event, "hero_died")
			testutil.AssertEqual(t, "entity", env.Entity, ref)

			var died game.HeroDied
			if err := json.Unmarshal(env.Data, &died); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "died", died, game.HeroDied{CarriedMoney: 75, CarriedItems: 2})
		})
	}
}

func TestEventModule_RequiresMessaging(t *testing.T) {
	mm := modules.NewManager(modules.CapEntities)
	err := mm.Register(NewEventModule(&fakePublisher{}))
	if !errors.Is(err, modules.ErrMissingCapability) {
		t.Errorf("expected ErrMissingCapability, got %v", err)
	}
}
