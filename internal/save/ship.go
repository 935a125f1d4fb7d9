package save

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/storage"
)

// ShipSpec is a ship as stored on disk, both for templates and saves.
type ShipSpec struct {
	Hull  storage.SmartIdentifier[*game.HullConfig] `json:"hull"`
	Money float32                                   `json:"money"`
	Items string                                    `json:"items"`

	// Ext holds per-module data, such as save statistics.
	Ext storage.ExtensionState `json:"ext,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (s *ShipSpec) Validate() error {
	el := errors.NewErrorList()
	el.Add(s.Hull.Validate())
	if s.Money < 0 {
		el.Add(fmt.Errorf("money must not be negative"))
	}
	return el.Err()
}

// Stats is kept in the "stats" extension of the saved ship.
type Stats struct {
	Saves     int     `json:"saves"`
	BestMoney float32 `json:"best_money"`
}

const statsExtension = "stats"
