package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestSession_Play(t *testing.T) {
	tests := map[string]struct {
		input       string
		expContains []string
		expErr      string
	}{
		"quit": {
			input:       "quit\n",
			expContains: []string{"Frigate: life 10/10", "[1,250 | 10/10] > ", "Goodbye!"},
		},
		"user error keeps session": {
			input:       "fly\n\nstatus\nquit\n",
			expContains: []string{"Unknown command: fly", "Goodbye!"},
		},
		"connection closed": {
			input:       "pause\n",
			expContains: []string{"Game paused."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, _ := newTestGame(t)
			c := NewConsole(&fakeRunner{g: g})
			conn := &bufferRW{in: bytes.NewBufferString(tt.input)}

			err := c.RunSession(context.Background(), conn)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := conn.out.String()
			for _, want := range tt.expContains {
				if !strings.Contains(out, want) {
					t.Errorf("output %q does not contain %q", out, want)
				}
			}
		})
	}
}

func TestFormatEvent(t *testing.T) {
	tests := map[string]struct {
		data string
		exp  string
	}{
		"hero died": {
			data: `{"event":"hero_died","entity":"e1","data":{"carried_money":937.5,"carried_items":2}}`,
			exp:  "Ship lost. 937.5 credits and 2 items carried over.",
		},
		"pause": {
			data: `{"event":"pause_changed","entity":"e1","data":{"paused":true}}`,
			exp:  "Game paused.",
		},
		"unknown event": {
			data: `{"event":"station_docked","entity":"e1","data":{}}`,
			exp:  "[station docked]",
		},
		"not json": {
			data: `hello`,
			exp:  "[unreadable event]",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "text", formatEvent([]byte(tt.data)), tt.exp)
		})
	}
}
