package modules

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/registry"
)

// Manager holds the registered modules in registration order.
type Manager struct {
	provided map[Capability]bool
	modules  []Module
	keys     map[string]bool
}

// NewManager accepts modules that need no more than provided.
func NewManager(provided ...Capability) *Manager {
	m := &Manager{
		provided: map[Capability]bool{},
		keys:     map[string]bool{},
	}
	for _, c := range provided {
		m.provided[c] = true
	}
	return m
}

func (m *Manager) Register(mod Module) error {
	if m.keys[mod.Key()] {
		return fmt.Errorf("%s: %w", mod.Key(), ErrDuplicateModule)
	}
	for _, c := range mod.Requires() {
		if !m.provided[c] {
			return fmt.Errorf("%s requires %s: %w", mod.Key(), c, ErrMissingCapability)
		}
	}

	m.keys[mod.Key()] = true
	m.modules = append(m.modules, mod)
	return nil
}

func (m *Manager) Modules() []Module {
	return m.modules
}

// Init initializes every module in order, stopping at the first failure.
func (m *Manager) Init(ctx context.Context, reg *registry.Registry) error {
	for _, mod := range m.modules {
		if err := mod.Init(ctx, reg); err != nil {
			return fmt.Errorf("initializing %s: %w", mod.Key(), err)
		}
		slog.DebugContext(ctx, "module initialized", "module", mod.Key(), "version", mod.Version())
	}
	return nil
}

// Summary counts a module's assets by kind. Item definitions are split
// further by item kind.
type Summary struct {
	Key            string
	Version        string
	Armors         int
	AbilityCharges int
	Clips          int
	Engines        int
	Shields        int
	Others         int
	Emitters       int
	Sounds         int
	Music          int
	Textures       int
}

func (m *Manager) Summaries() []Summary {
	out := make([]Summary, 0, len(m.modules))
	for _, mod := range m.modules {
		s := Summary{Key: mod.Key(), Version: mod.Version()}
		if l, ok := mod.(AssetLister); ok {
			for _, a := range l.Assets() {
				if strings.HasPrefix(a.Name, mod.Key()+":") {
					s.count(a)
				}
			}
		}
		out = append(out, s)
	}
	return out
}

func (s *Summary) count(a Asset) {
	switch a.Kind {
	case AssetJSON:
		switch a.ItemKind {
		case item.KindArmor:
			s.Armors++
		case item.KindAbilityCharge:
			s.AbilityCharges++
		case item.KindClip:
			s.Clips++
		case item.KindEngine:
			s.Engines++
		case item.KindShield:
			s.Shields++
		default:
			s.Others++
		}
	case AssetEmitter:
		s.Emitters++
	case AssetSound:
		s.Sounds++
	case AssetMusic:
		s.Music++
	case AssetTexture:
		s.Textures++
	}
}

// LogAvailableModules logs one line per module with its asset counts.
func (m *Manager) LogAvailableModules(ctx context.Context) {
	for _, s := range m.Summaries() {
		slog.InfoContext(ctx, "module discovered",
			"module", s.Key,
			"version", s.Version,
			"armors", s.Armors,
			"ability_charges", s.AbilityCharges,
			"clips", s.Clips,
			"engines", s.Engines,
			"shields", s.Shields,
			"others", s.Others,
			"emitters", s.Emitters,
			"sounds", s.Sounds,
			"music", s.Music,
			"textures", s.Textures,
		)
	}
}
