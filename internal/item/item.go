package item

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// Kind is the category of an item definition.
type Kind int

const (
	KindUnknown Kind = iota
	KindGun
	KindArmor
	KindShield
	KindEngine
	KindClip
	KindAbilityCharge
	KindRepair
	KindOther
)

var kindNames = map[Kind]string{
	KindGun:           "gun",
	KindArmor:         "armor",
	KindShield:        "shield",
	KindEngine:        "engine",
	KindClip:          "clip",
	KindAbilityCharge: "ability-charge",
	KindRepair:        "repair",
	KindOther:         "other",
}

func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k
		}
	}
	return KindUnknown
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Equippable reports whether items of this kind occupy a ship slot.
func (k Kind) Equippable() bool {
	switch k {
	case KindGun, KindArmor, KindShield, KindEngine:
		return true
	default:
		return false
	}
}

// EquipState records which slot, if any, holds an item. Guns use both
// values to tell the primary mount from the secondary one; other
// equippable kinds only use EquipPrimary.
type EquipState int

const (
	EquipNone EquipState = iota
	EquipPrimary
	EquipSecondary
)

// Def is the catalog definition of an item. The code is the asset id and
// is assigned by the catalog.
type Def struct {
	Name    string  `json:"name"`
	KindStr string  `json:"kind"`
	Price   float32 `json:"price"`

	// Icon names the texture shown in inventory screens. Items without an
	// icon are never handed out at random.
	Icon string `json:"icon,omitempty"`

	// Clip is the code of the ammunition clip a gun consumes.
	Clip string `json:"clip,omitempty"`

	code string
}

func (d *Def) Kind() Kind {
	return ParseKind(d.KindStr)
}

func (d *Def) Code() string {
	return d.code
}

// Validate satisfies storage.ValidatingSpec
func (d *Def) Validate() error {
	el := errors.NewErrorList()
	if d.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if d.KindStr == "" {
		el.Add(fmt.Errorf("item kind is required"))
	} else if d.Kind() == KindUnknown {
		el.Add(fmt.Errorf("item kind %q is invalid", d.KindStr))
	}
	if d.Price < 0 {
		el.Add(fmt.Errorf("item price must not be negative"))
	}
	if d.Clip != "" && d.Kind() != KindGun {
		el.Add(fmt.Errorf("only guns take clips"))
	}
	return el.Err()
}

// Item is a single instance of a Def. It belongs to at most one Container.
type Item struct {
	id       string
	def      *Def
	equipped EquipState
	owner    *Container
}

func New(def *Def) *Item {
	return &Item{
		id:  uuid.New().String(),
		def: def,
	}
}

func (i *Item) ID() string               { return i.id }
func (i *Item) Def() *Def                { return i.def }
func (i *Item) Code() string             { return i.def.code }
func (i *Item) Name() string             { return i.def.Name }
func (i *Item) Kind() Kind               { return i.def.Kind() }
func (i *Item) Icon() string             { return i.def.Icon }
func (i *Item) Price() float32           { return i.def.Price }
func (i *Item) IsGun() bool              { return i.def.Kind() == KindGun }
func (i *Item) Equipped() EquipState     { return i.equipped }
func (i *Item) SetEquipped(e EquipState) { i.equipped = e }

// Container returns the container currently holding the item, if any.
func (i *Item) Container() *Container { return i.owner }

// Copy returns a fresh, unequipped, unowned instance of the same definition.
func (i *Item) Copy() *Item {
	return New(i.def)
}

// IsSame reports whether two items stack into the same group.
func (i *Item) IsSame(o *Item) bool {
	return o != nil && i.def.code == o.def.code
}

func (i *Item) String() string {
	if i.equipped == EquipNone {
		return i.def.code
	}
	return fmt.Sprintf("%s@%d", i.def.code, i.equipped)
}
