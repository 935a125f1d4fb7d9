package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/messaging"
)

// eventBuffer bounds the events queued for a slow connection. Extra
// events are dropped.
const eventBuffer = 16

var eventTmpls = map[string]*template.Template{
	"hero_spawned":  parse("hero_spawned", `Ship {{ .hull }} launched with {{ .money }} credits.`),
	"hero_died":     parse("hero_died", `Ship lost. {{ .carried_money }} credits and {{ .carried_items }} items carried over.`),
	"pause_changed": parse("pause_changed", `{{ if .paused }}Game paused.{{ else }}Game resumed.{{ end }}`),
	"ship_saved":    parse("ship_saved", `Ship saved: {{ .hull }}, {{ .money }} credits, {{ .items }} items.`),
}

// Session is one console connection.
type Session struct {
	console *Console
	conn    io.ReadWriter

	msgs    chan []byte
	quit    bool
	invPage int
}

func newSession(c *Console, conn io.ReadWriter) *Session {
	return &Session{
		console: c,
		conn:    conn,
		msgs:    make(chan []byte, eventBuffer),
	}
}

func (s *Session) Play(ctx context.Context) error {
	// Start goroutine to read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	if unsub := s.subscribe(ctx); unsub != nil {
		defer unsub()
	}

	// Show the ship on connect
	if err := s.exec(ctx, "status"); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			if err := s.writeLine("\n" + formatEvent(msg)); err != nil {
				return err
			}
			if err := s.prompt(ctx); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Input channel closed (connection lost).
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			if strings.TrimSpace(line) == "" {
				if err := s.prompt(ctx); err != nil {
					return err
				}
				continue
			}

			if err := s.exec(ctx, line); err != nil {
				return err
			}
			if s.quit {
				return s.writeLine("Goodbye!")
			}
		}
	}
}

// exec runs line and writes its output followed by a prompt. Only
// system errors are returned.
func (s *Session) exec(ctx context.Context, line string) error {
	out, err := s.console.Exec(ctx, s, line)
	if err != nil {
		var userErr *UserError
		if !errors.As(err, &userErr) {
			return fmt.Errorf("command execution failed: %w", err)
		}
		out = userErr.Message
	}

	if out != "" {
		if err := s.writeLine(out); err != nil {
			return err
		}
	}
	if s.quit {
		return nil
	}
	return s.prompt(ctx)
}

func (s *Session) subscribe(ctx context.Context) func() {
	if s.console.bus == nil {
		return nil
	}
	unsub, err := s.console.bus.Subscribe(messaging.EventSubjectAll, func(_ string, data []byte) {
		select {
		case s.msgs <- data:
		default:
		}
	})
	if err != nil {
		slog.DebugContext(ctx, "console running without events", "error", err)
		return nil
	}
	return unsub
}

// formatEvent renders a bus message, falling back to the event name.
func formatEvent(data []byte) string {
	var env messaging.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "[unreadable event]"
	}

	tmpl, ok := eventTmpls[env.Event]
	if !ok {
		return "[" + strings.ReplaceAll(env.Event, "_", " ") + "]"
	}

	var fields map[string]any
	if err := json.Unmarshal(env.Data, &fields); err != nil {
		return "[" + env.Event + "]"
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, fields); err != nil {
		return "[" + env.Event + "]"
	}
	return sb.String()
}

// prompt shows money and life when the game can be reached.
func (s *Session) prompt(ctx context.Context) error {
	prompt := "> "
	var hud game.HUD
	err := s.console.runner.Do(ctx, func(_ context.Context, g *game.Game) error {
		hud = g.HUD()
		return nil
	})
	if err == nil {
		prompt = fmt.Sprintf("[%s | %d/%d] > ", s.console.money(hud.Money), int(hud.Life), int(hud.MaxLife))
	}
	_, err = s.conn.Write([]byte(prompt))
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(msg + "\n\n"))
	return err
}
