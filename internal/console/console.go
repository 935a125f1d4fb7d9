package console

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/modules"
	"github.com/pixil98/go-sol/internal/save"
)

// Runner runs fn on the goroutine that owns the game.
type Runner interface {
	Do(ctx context.Context, fn func(context.Context, *game.Game) error) error
}

type HistoryReader interface {
	Recent(ctx context.Context, n int) ([]save.Entry, error)
}

type ModuleLister interface {
	Summaries() []modules.Summary
}

// Subscriber delivers bus messages matching subject to handler.
type Subscriber interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
}

// Console executes text commands against the running game.
type Console struct {
	runner  Runner
	history HistoryReader
	modules ModuleLister
	bus     Subscriber
	printer *message.Printer
	width   int

	commands map[string]*command
}

type ConsoleOpt func(*Console)

func WithHistory(h HistoryReader) ConsoleOpt {
	return func(c *Console) {
		c.history = h
	}
}

func WithModules(m ModuleLister) ConsoleOpt {
	return func(c *Console) {
		c.modules = m
	}
}

// WithBus shows game events to every session as they happen.
func WithBus(s Subscriber) ConsoleOpt {
	return func(c *Console) {
		c.bus = s
	}
}

func WithWidth(w int) ConsoleOpt {
	return func(c *Console) {
		c.width = w
	}
}

// WithLanguage sets the locale used for numbers.
func WithLanguage(tag language.Tag) ConsoleOpt {
	return func(c *Console) {
		c.printer = message.NewPrinter(tag)
	}
}

func NewConsole(runner Runner, opts ...ConsoleOpt) *Console {
	c := &Console{
		runner:   runner,
		printer:  message.NewPrinter(language.English),
		width:    DefaultWidth,
		commands: map[string]*command{},
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, cmd := range builtinCommands() {
		c.commands[cmd.name] = cmd
	}
	return c
}

// RunSession serves one connection until it quits or ctx is done.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	return newSession(c, conn).Play(ctx)
}

// Exec runs one input line for s.
func (c *Console) Exec(ctx context.Context, s *Session, line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}

	cmd, ok := c.commands[strings.ToLower(parts[0])]
	if !ok {
		return "", NewUserError(fmt.Sprintf("Unknown command: %s", parts[0]))
	}

	out, err := cmd.run(ctx, c, s, parts[1:])
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// sortedCommands returns every command ordered by name.
func (c *Console) sortedCommands() []*command {
	cmds := make([]*command, 0, len(c.commands))
	for _, cmd := range c.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b *command) int { return strings.Compare(a.name, b.name) })
	return cmds
}

func (c *Console) money(m float32) string {
	return c.printer.Sprintf("%d", int(m))
}
