package item

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-sol/internal/storage"
)

// Randomizer is the subset of *rand.Rand the catalog and game need.
type Randomizer interface {
	Float32() float32
	IntN(n int) int
}

// Catalog is the set of item definitions known to the game, keyed by code.
type Catalog struct {
	defs  map[string]*Def
	codes []string
}

// NewCatalog binds every definition in st to its asset id.
func NewCatalog(st storage.Storer[*Def]) *Catalog {
	c := &Catalog{defs: map[string]*Def{}}
	for code, def := range st.GetAll() {
		def.code = code
		c.defs[code] = def
		c.codes = append(c.codes, code)
	}
	slices.Sort(c.codes)
	return c
}

func (c *Catalog) Get(code string) *Def {
	return c.defs[code]
}

// Defs returns every definition ordered by code.
func (c *Catalog) Defs() []*Def {
	out := make([]*Def, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.defs[code])
	}
	return out
}

// Count returns the number of definitions of kind k.
func (c *Catalog) Count(k Kind) int {
	n := 0
	for _, d := range c.defs {
		if d.Kind() == k {
			n++
		}
	}
	return n
}

// Random returns a new instance of a uniformly chosen definition.
func (c *Catalog) Random(rng Randomizer) *Item {
	if len(c.codes) == 0 {
		return nil
	}
	return New(c.defs[c.codes[rng.IntN(len(c.codes))]])
}

// AddAllGuns puts one of every gun into ct, skipping any that do not fit.
func (c *Catalog) AddAllGuns(ct *Container) {
	for _, code := range c.codes {
		def := c.defs[code]
		if def.Kind() != KindGun {
			continue
		}
		if err := ct.Add(New(def)); err != nil {
			slog.Debug("skipping gun", "code", code, "error", err)
		}
	}
}

// Parse builds items from a space separated list of codes. A code may
// carry an equip suffix: "blaster@1" is equipped in the primary slot,
// "blaster@2" in the secondary one.
func (c *Catalog) Parse(s string) ([]*Item, error) {
	var items []*Item
	for _, tok := range strings.Fields(s) {
		code, state := tok, EquipNone
		if i := strings.IndexByte(tok, '@'); i >= 0 {
			code = tok[:i]
			n, err := strconv.Atoi(tok[i+1:])
			if err != nil || n < int(EquipNone) || n > int(EquipSecondary) {
				return nil, fmt.Errorf("item %q: invalid equip state", tok)
			}
			state = EquipState(n)
		}

		def := c.defs[code]
		if def == nil {
			return nil, fmt.Errorf("item %q: unknown code", code)
		}

		it := New(def)
		it.SetEquipped(state)
		items = append(items, it)
	}
	return items, nil
}

// Format is the inverse of Parse.
func Format(items []*Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.String())
	}
	return strings.Join(parts, " ")
}
