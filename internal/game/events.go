package game

// HeroComponent marks the entity that receives hero events.
type HeroComponent struct{}

func (HeroComponent) ComponentName() string { return "hero" }

type HeroSpawned struct {
	Hull  string  `json:"hull"`
	Money float32 `json:"money"`
	Items int     `json:"items"`
}

func (HeroSpawned) EventName() string { return "hero_spawned" }

type HeroDied struct {
	CarriedMoney float32 `json:"carried_money"`
	CarriedItems int     `json:"carried_items"`
}

func (HeroDied) EventName() string { return "hero_died" }

type PauseChanged struct {
	Paused bool `json:"paused"`
}

func (PauseChanged) EventName() string { return "pause_changed" }

type ShipSaved struct {
	Hull  string  `json:"hull"`
	Money float32 `json:"money"`
	Items int     `json:"items"`
}

func (ShipSaved) EventName() string { return "ship_saved" }
