package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-sol/internal/storage"
)

const (
	HullTypeStd     = "std"
	HullTypeBig     = "big"
	HullTypeStation = "station"

	// MaxGunSlots is the number of gun mounts a ship can have.
	MaxGunSlots = 2
)

var hullTypes = []string{HullTypeStd, HullTypeBig, HullTypeStation}

// GunSlot describes one gun mount. Guns on a fixed mount stay attached
// unless forced off.
type GunSlot struct {
	Fixed bool `json:"fixed,omitempty"`
}

// HullConfig is immutable reference data describing a ship chassis.
type HullConfig struct {
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	MaxLife       float32        `json:"max_life"`
	Size          float32        `json:"size"`
	Acceleration  float32        `json:"acceleration"`
	MaxSpeed      float32        `json:"max_speed"`
	RotationSpeed float32        `json:"rotation_speed"`
	GunSlots      []GunSlot      `json:"gun_slots,omitempty"`
	Ability       *AbilityConfig `json:"ability,omitempty"`

	code string
}

// Code is the asset id the hull was loaded under.
func (h *HullConfig) Code() string {
	return h.code
}

func (h *HullConfig) HasGunSlot(secondary bool) bool {
	if secondary {
		return len(h.GunSlots) > 1
	}
	return len(h.GunSlots) > 0
}

// Validate satisfies storage.ValidatingSpec
func (h *HullConfig) Validate() error {
	el := errors.NewErrorList()

	if h.Name == "" {
		el.Add(fmt.Errorf("hull name is required"))
	}
	if !slices.Contains(hullTypes, h.Type) {
		el.Add(fmt.Errorf("hull type %q is invalid", h.Type))
	}
	if h.MaxLife <= 0 {
		el.Add(fmt.Errorf("max_life must be positive"))
	}
	if h.Size <= 0 {
		el.Add(fmt.Errorf("size must be positive"))
	}
	if len(h.GunSlots) > MaxGunSlots {
		el.Add(fmt.Errorf("at most %d gun slots are allowed", MaxGunSlots))
	}
	if h.Ability != nil {
		el.Add(h.Ability.Validate())
	}

	return el.Err()
}

// BindHullCodes stamps every hull in st with its asset id.
func BindHullCodes(st storage.Storer[*HullConfig]) {
	for code, h := range st.GetAll() {
		h.code = code
	}
}
