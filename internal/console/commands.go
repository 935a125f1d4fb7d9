package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pixil98/go-sol/internal/driver"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/ui"
)

// DefaultHistoryCount is how many saves "history" shows without an
// argument.
const DefaultHistoryCount = 5

type commandFunc func(ctx context.Context, c *Console, s *Session, args []string) (string, error)

type command struct {
	name  string
	usage string
	help  string
	run   commandFunc
}

func builtinCommands() []*command {
	return []*command{
		{name: "status", usage: "status", help: "Show your ship.", run: runStatus},
		{name: "pause", usage: "pause", help: "Pause the game.", run: runPause(true)},
		{name: "resume", usage: "resume", help: "Resume the game.", run: runPause(false)},
		{name: "respawn", usage: "respawn", help: "Abandon your ship and launch a new one.", run: runRespawn},
		{name: "inventory", usage: "inventory [page]", help: "List your items. Page may be a number, next or prev.", run: runInventory},
		{name: "save", usage: "save", help: "Save your ship.", run: runSave},
		{name: "history", usage: "history [n]", help: "Show the last n saves.", run: runHistory},
		{name: "modules", usage: "modules", help: "List loaded modules.", run: runModules},
		{name: "help", usage: "help", help: "Show this list.", run: runHelp},
		{name: "quit", usage: "quit", help: "Close the console.", run: runQuit},
	}
}

// do runs fn on the game. Failures other than user errors and driver
// shutdown are reported to the user rather than ending the session.
func (c *Console) do(ctx context.Context, action string, fn func(context.Context, *game.Game) error) error {
	err := c.runner.Do(ctx, fn)

	var ue *UserError
	switch {
	case err == nil, errors.As(err, &ue), errors.Is(err, driver.ErrStopped), ctx.Err() != nil:
		return err
	default:
		slog.WarnContext(ctx, "console command failed", "action", action, "error", err)
		return NewUserError(fmt.Sprintf("Could not %s: %v", action, err))
	}
}

var statusTmpl = parse("status", `{{ if eq .Ship "flying" }}{{ .Hull | title }}: life {{ .Life }}/{{ .MaxLife }}, {{ .Money }} credits, {{ .Items }} items
Position {{ printf "%.1f, %.1f" .X .Y }}
{{ else if eq .Ship "transit" }}{{ .Hull | title }} in transit with {{ .Money }} credits
{{ else }}No ship. Type "respawn" to launch a new one.
{{ end }}Time {{ printf "%.1f" .Time }}s{{ if .Paused }} (paused){{ end }}
{{ with .Tutorial }}Tutorial: {{ . }}
{{ end }}`)

type statusData struct {
	Ship     string
	Hull     string
	Life     int
	MaxLife  int
	Money    string
	Items    int
	X        float32
	Y        float32
	Time     float32
	Paused   bool
	Tutorial string
}

func (c *Console) status(g *game.Game) statusData {
	d := statusData{Time: g.Time(), Paused: g.Paused()}
	if t := g.Tutorial(); t != nil {
		d.Tutorial = t.Current()
	}

	if hero := g.Hero(); hero != nil {
		d.Ship = "flying"
		d.Hull = hero.Hull().Name
		d.Life = int(hero.Life())
		d.MaxLife = int(hero.Hull().MaxLife)
		d.Money = c.money(hero.Money())
		d.Items = hero.Items().Size()
		d.X, d.Y = hero.Position().X, hero.Position().Y
	} else if th := g.TranscendentHero(); th != nil {
		d.Ship = "transit"
		d.Hull = th.Ship().Hull.Name
		d.Money = c.money(th.Ship().Money)
	}
	return d
}

func runStatus(ctx context.Context, c *Console, _ *Session, _ []string) (string, error) {
	var d statusData
	err := c.do(ctx, "read status", func(_ context.Context, g *game.Game) error {
		d = c.status(g)
		return nil
	})
	if err != nil {
		return "", err
	}
	return render(statusTmpl, d, c.width)
}

func runPause(paused bool) commandFunc {
	return func(ctx context.Context, c *Console, _ *Session, _ []string) (string, error) {
		action := "resume"
		if paused {
			action = "pause"
		}
		err := c.do(ctx, action, func(ctx context.Context, g *game.Game) error {
			if g.Paused() == paused {
				if paused {
					return NewUserError("The game is already paused.")
				}
				return NewUserError("The game is not paused.")
			}
			g.SetPaused(ctx, paused)
			return nil
		})
		if err != nil {
			return "", err
		}
		if paused {
			return "Game paused.", nil
		}
		return "Game resumed.", nil
	}
}

func runRespawn(ctx context.Context, c *Console, _ *Session, _ []string) (string, error) {
	var money float32
	err := c.do(ctx, "respawn", func(ctx context.Context, g *game.Game) error {
		if err := g.Respawn(ctx); err != nil {
			return err
		}
		if hero := g.Hero(); hero != nil {
			money = hero.Money()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("A new ship launches with %s credits.", c.money(money)), nil
}

var inventoryTmpl = parse("inventory", `{{ range .Rows }}{{ printf "%3d" .Amount }} x {{ .Name }}{{ if .New }} (new){{ end }}
{{ else }}Your hold is empty.
{{ end }}Page {{ .Page }}/{{ .Pages }}`)

type inventoryData struct {
	Rows  []ui.Row
	Page  int
	Pages int
}

// heroItems is the hold of the hero, in flight or in transit.
func heroItems(g *game.Game) *item.Container {
	if hero := g.Hero(); hero != nil {
		return hero.Items()
	}
	if th := g.TranscendentHero(); th != nil {
		return th.Ship().Items
	}
	return nil
}

func runInventory(ctx context.Context, c *Console, s *Session, args []string) (string, error) {
	page := s.invPage
	var move int
	if len(args) > 0 {
		switch args[0] {
		case "next":
			move = 1
		case "prev":
			move = -1
		default:
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return "", NewUserError("Usage: inventory [page|next|prev]")
			}
			page = n - 1
		}
	}

	var d inventoryData
	err := c.do(ctx, "list inventory", func(_ context.Context, g *game.Game) error {
		ic := heroItems(g)
		if ic == nil {
			return NewUserError("You have no ship.")
		}

		l := ui.NewItemList(ic)
		l.SetPage(page)
		switch move {
		case 1:
			l.NextPage()
		case -1:
			l.PrevPage()
		}

		d = inventoryData{Rows: l.Rows(), Page: l.Page() + 1, Pages: l.PageCount()}
		s.invPage = l.Page()
		return nil
	})
	if err != nil {
		return "", err
	}
	return render(inventoryTmpl, d, c.width)
}

func runSave(ctx context.Context, c *Console, _ *Session, _ []string) (string, error) {
	err := c.do(ctx, "save", func(ctx context.Context, g *game.Game) error {
		if g.Tutorial() != nil {
			return NewUserError("Tutorial ships are not saved.")
		}
		return g.SaveShip(ctx)
	})
	if err != nil {
		return "", err
	}
	return "Ship saved.", nil
}

var historyTmpl = parse("history", `{{ range . }}{{ .When }}  {{ .Hull }}  {{ .Money }} credits  {{ .Items | default "no items" }}
{{ else }}No saves yet.
{{ end }}`)

type historyRow struct {
	When  string
	Hull  string
	Money string
	Items string
}

func runHistory(ctx context.Context, c *Console, _ *Session, args []string) (string, error) {
	if c.history == nil {
		return "", NewUserError("Save history is not enabled.")
	}

	n := DefaultHistoryCount
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return "", NewUserError("Usage: history [n]")
		}
		n = v
	}

	entries, err := c.history.Recent(ctx, n)
	if err != nil {
		return "", fmt.Errorf("reading history: %w", err)
	}

	rows := make([]historyRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, historyRow{
			When:  e.SavedAt.Local().Format("2006-01-02 15:04:05"),
			Hull:  e.Hull,
			Money: c.money(e.Money),
			Items: e.Items,
		})
	}
	return render(historyTmpl, rows, c.width)
}

var modulesTmpl = parse("modules", `{{ range . }}{{ .Key }} {{ .Version }}: {{ .Armors }} armors, {{ .AbilityCharges }} ability charges, {{ .Clips }} clips, {{ .Engines }} engines, {{ .Shields }} shields, {{ .Others }} other items, {{ .Emitters }} emitters, {{ .Sounds }} sounds, {{ .Music }} music, {{ .Textures }} textures
{{ end }}`)

func runModules(_ context.Context, c *Console, _ *Session, _ []string) (string, error) {
	if c.modules == nil {
		return "No modules loaded.", nil
	}
	return render(modulesTmpl, c.modules.Summaries(), c.width)
}

var helpTmpl = parse("help", `{{ range . }}{{ printf "%-18s" .Usage }}{{ .Help }}
{{ end }}`)

type helpRow struct {
	Usage string
	Help  string
}

func runHelp(_ context.Context, c *Console, _ *Session, _ []string) (string, error) {
	var rows []helpRow
	for _, cmd := range c.sortedCommands() {
		rows = append(rows, helpRow{Usage: cmd.usage, Help: cmd.help})
	}
	return render(helpTmpl, rows, c.width)
}

func runQuit(_ context.Context, _ *Console, s *Session, _ []string) (string, error) {
	s.quit = true
	return "", nil
}
