package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestNatsServer_PublishBeforeStart(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Publish("sol.events.test", nil); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	if _, err := s.Subscribe("sol.events.test", func(string, []byte) {}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestNatsServer_RoundTrip(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server never became ready")
	}

	type msg struct {
		subject string
		data    string
	}
	got := make(chan msg, 1)
	unsub, err := s.Subscribe(EventSubjectAll, func(subject string, data []byte) {
		got <- msg{subject: subject, data: string(data)}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	if err := s.Publish("sol.events.ship_saved", []byte(`{"event":"ship_saved"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case m := <-got:
		testutil.AssertEqual(t, "subject", m.subject, "sol.events.ship_saved")
		testutil.AssertEqual(t, "data", m.data, `{"event":"ship_saved"}`)
	case <-time.After(5 * time.Second):
		t.Fatal("message never arrived")
	}
}
