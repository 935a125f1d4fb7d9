package game

import "github.com/pixil98/go-sol/internal/item"

// RespawnFraction is the share of money and the chance per unequipped item
// carried over to the next life.
const RespawnFraction = 0.75

// RespawnItem is an item carried over a death, with the slot it held.
type RespawnItem struct {
	Item     *item.Item
	Equipped item.EquipState
}

// RespawnState is what the next hero inherits from the last one.
type RespawnState struct {
	Money float32
	Hull  *HullConfig
	Items []RespawnItem
}

func (r RespawnState) HasItems() bool {
	return len(r.Items) > 0
}

func (r *RespawnState) Clear() {
	*r = RespawnState{}
}
