package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-sol/internal/driver"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/save"
	"github.com/pixil98/go-testutil"
)

func TestConsole_Exec(t *testing.T) {
	savedAt := time.Date(2026, 3, 1, 12, 30, 0, 0, time.Local)

	tests := map[string]struct {
		lines     []string
		opts      []ConsoleOpt
		gameOpts  []game.Opt
		expOut    string
		expErr    string
		expWrites int
	}{
		"status": {
			lines:  []string{"status"},
			expOut: "Frigate: life 10/10, 1,250 credits, 2 items\nPosition 0.0, 0.0\nTime 0.0s",
		},
		"status paused": {
			lines:  []string{"pause", "status"},
			expOut: "Frigate: life 10/10, 1,250 credits, 2 items\nPosition 0.0, 0.0\nTime 0.0s (paused)",
		},
		"status in tutorial": {
			lines:    []string{"status"},
			gameOpts: []game.Opt{game.WithTutorialSteps(game.TutorialStep{Text: "Fly"})},
			expOut:   "Frigate: life 10/10, 200 credits, 2 items\nPosition 0.0, 0.0\nTime 0.0s\nTutorial: Fly",
		},
		"pause": {
			lines:  []string{"pause"},
			expOut: "Game paused.",
		},
		"pause twice": {
			lines:  []string{"pause", "pause"},
			expErr: "The game is already paused.",
		},
		"resume while running": {
			lines:  []string{"resume"},
			expErr: "The game is not paused.",
		},
		"pause then resume": {
			lines:  []string{"pause", "resume"},
			expOut: "Game resumed.",
		},
		"respawn keeps three quarters": {
			lines:  []string{"respawn"},
			expOut: "A new ship launches with 937 credits.",
		},
		"inventory": {
			lines:  []string{"inventory"},
			expOut: "  1 x Plate\n  1 x Blaster\nPage 1/1",
		},
		"inventory past end": {
			lines:  []string{"inventory 9"},
			expOut: "  1 x Plate\n  1 x Blaster\nPage 1/1",
		},
		"inventory bad page": {
			lines:  []string{"inventory zero"},
			expErr: "Usage: inventory [page|next|prev]",
		},
		"save": {
			lines:     []string{"save"},
			expOut:    "Ship saved.",
			expWrites: 1,
		},
		"save in tutorial": {
			lines:    []string{"save"},
			gameOpts: []game.Opt{game.WithTutorial()},
			expErr:   "Tutorial ships are not saved.",
		},
		"history disabled": {
			lines:  []string{"history"},
			expErr: "Save history is not enabled.",
		},
		"history": {
			lines: []string{"history 1"},
			opts: []ConsoleOpt{WithHistory(&fakeHistory{entries: []save.Entry{
				{Hull: "frigate", Money: 4200, Items: "blaster@1", SavedAt: savedAt},
				{Hull: "frigate", Money: 10, SavedAt: savedAt},
			}})},
			expOut: "2026-03-01 12:30:00  frigate  4,200 credits  blaster@1",
		},
		"history empty": {
			lines:  []string{"history"},
			opts:   []ConsoleOpt{WithHistory(&fakeHistory{})},
			expOut: "No saves yet.",
		},
		"history bad count": {
			lines:  []string{"history -2"},
			opts:   []ConsoleOpt{WithHistory(&fakeHistory{})},
			expErr: "Usage: history [n]",
		},
		"history item fallback": {
			lines: []string{"history"},
			opts: []ConsoleOpt{WithHistory(&fakeHistory{entries: []save.Entry{
				{Hull: "frigate", Money: 10, SavedAt: savedAt},
			}})},
			expOut: "2026-03-01 12:30:00  frigate  10 credits  no items",
		},
		"modules none": {
			lines:  []string{"modules"},
			expOut: "No modules loaded.",
		},
		"unknown command": {
			lines:  []string{"fly"},
			expErr: "Unknown command: fly",
		},
		"command is case insensitive": {
			lines:  []string{"PAUSE"},
			expOut: "Game paused.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			g, repo := newTestGame(t, tt.gameOpts...)
			c := NewConsole(&fakeRunner{g: g}, tt.opts...)
			s := newSession(c, &bufferRW{in: &bytes.Buffer{}})

			var out string
			var err error
			for _, line := range tt.lines {
				out, err = c.Exec(context.Background(), s, line)
			}

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				var ue *UserError
				testutil.AssertEqual(t, "user error", errors.As(err, &ue), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "output", out, tt.expOut)
			testutil.AssertEqual(t, "writes", repo.writes, tt.expWrites)
		})
	}
}

func TestConsole_Modules(t *testing.T) {
	g, _ := newTestGame(t)
	c := NewConsole(&fakeRunner{g: g}, WithModules(fakeModules{{Key: "core", Version: "1.0.0", Armors: 3, Textures: 12}}))

	out, err := c.Exec(context.Background(), newSession(c, &bufferRW{in: &bytes.Buffer{}}), "modules")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"core 1.0.0:", "3 armors", "12 textures"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > DefaultWidth {
			t.Errorf("line %q is wider than %d", line, DefaultWidth)
		}
	}
}

func TestConsole_Help(t *testing.T) {
	g, _ := newTestGame(t)
	c := NewConsole(&fakeRunner{g: g})

	out, err := c.Exec(context.Background(), newSession(c, &bufferRW{in: &bytes.Buffer{}}), "help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(out, "\n")
	testutil.AssertEqual(t, "lines", len(lines), len(builtinCommands()))
	testutil.AssertEqual(t, "first", lines[0], "help              Show this list.")
}

func TestConsole_RunnerErrors(t *testing.T) {
	tests := map[string]struct {
		err      error
		expUser  bool
		expError string
	}{
		"game failure becomes user error": {
			err:      errors.New("boom"),
			expUser:  true,
			expError: "Could not read status: boom",
		},
		"driver stopped is fatal": {
			err:      driver.ErrStopped,
			expError: "driver stopped",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewConsole(&fakeRunner{err: tt.err})

			_, err := c.Exec(context.Background(), newSession(c, &bufferRW{in: &bytes.Buffer{}}), "status")
			testutil.AssertErrorContains(t, err, tt.expError)

			var ue *UserError
			testutil.AssertEqual(t, "user error", errors.As(err, &ue), tt.expUser)
		})
	}
}
