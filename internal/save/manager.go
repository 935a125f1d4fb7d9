package save

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/storage"
)

const (
	// PrevShip is the key the last played ship is saved under.
	PrevShip = "prev"

	DefaultTemplate = "starter"
)

// Manager reads and writes the player's ship. Saves and templates live in
// separate stores so a save never shadows a template.
type Manager struct {
	saves       storage.Storer[*ShipSpec]
	templates   storage.Storer[*ShipSpec]
	hulls       storage.Storer[*game.HullConfig]
	defaultShip string
	history     *History
}

type ManagerOpt func(*Manager)

// WithHistory records every write in h.
func WithHistory(h *History) ManagerOpt {
	return func(m *Manager) {
		m.history = h
	}
}

// WithDefaultTemplate names the template used when there is no save.
func WithDefaultTemplate(name string) ManagerOpt {
	return func(m *Manager) {
		m.defaultShip = name
	}
}

func NewManager(saves, templates storage.Storer[*ShipSpec], hulls storage.Storer[*game.HullConfig], opts ...ManagerOpt) *Manager {
	m := &Manager{
		saves:       saves,
		templates:   templates,
		hulls:       hulls,
		defaultShip: DefaultTemplate,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ReadShip returns the previous save, or the default template.
func (m *Manager) ReadShip(ctx context.Context) (*game.ShipConfig, error) {
	spec := m.saves.Get(PrevShip)
	if spec == nil {
		slog.InfoContext(ctx, "no saved ship, using template", "template", m.defaultShip)
		return m.LoadShip(ctx, m.defaultShip)
	}
	return m.toConfig(PrevShip, spec)
}

// LoadShip returns the named template.
func (m *Manager) LoadShip(_ context.Context, name string) (*game.ShipConfig, error) {
	spec := m.templates.Get(name)
	if spec == nil {
		return nil, fmt.Errorf("loading %q: %w", name, ErrShipNotFound)
	}
	return m.toConfig(name, spec)
}

func (m *Manager) toConfig(name string, spec *ShipSpec) (*game.ShipConfig, error) {
	hull := spec.Hull
	if err := hull.Resolve(m.hulls); err != nil {
		return nil, fmt.Errorf("ship %q: %w", name, err)
	}
	return &game.ShipConfig{
		Hull:  hull.Get(),
		Money: spec.Money,
		Items: spec.Items,
	}, nil
}

// WriteShip saves the ship as the previous ship.
func (m *Manager) WriteShip(ctx context.Context, hull *game.HullConfig, money float32, items []*item.Item) error {
	spec := &ShipSpec{
		Hull:  storage.NewResolvedSmartIdentifier(hull.Code(), hull),
		Money: money,
		Items: item.Format(items),
	}
	if prev := m.saves.Get(PrevShip); prev != nil {
		spec.Ext = maps.Clone(prev.Ext)
	}

	var stats Stats
	err := spec.Ext.Update(statsExtension, &stats, func() error {
		stats.Saves++
		stats.BestMoney = max(stats.BestMoney, money)
		return nil
	})
	if err != nil {
		return err
	}

	if err := m.saves.Save(PrevShip, spec); err != nil {
		return fmt.Errorf("saving ship: %w", err)
	}
	slog.InfoContext(ctx, "ship saved", "hull", hull.Code(), "money", money, "items", len(items))

	if m.history != nil {
		if err := m.history.Record(ctx, Entry{Hull: hull.Code(), Money: money, Items: spec.Items}); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
	}
	return nil
}

// Stats returns the statistics kept with the previous save.
func (m *Manager) Stats() (Stats, error) {
	var s Stats
	prev := m.saves.Get(PrevShip)
	if prev == nil {
		return s, nil
	}
	_, err := prev.Ext.Get(statsExtension, &s)
	return s, err
}

// History returns nil when no history is attached.
func (m *Manager) History() *History {
	return m.history
}
