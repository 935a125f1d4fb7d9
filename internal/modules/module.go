package modules

import (
	"context"

	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/registry"
)

// Capability is something the engine offers to modules, such as the
// entity manager or the item catalog.
type Capability string

const (
	CapEntities  Capability = "entities"
	CapItems     Capability = "items"
	CapHulls     Capability = "hulls"
	CapMessaging Capability = "messaging"
)

// Module is a compiled-in extension.
type Module interface {
	Key() string
	Version() string

	// Requires lists the capabilities Init reads from the registry.
	Requires() []Capability
	Init(ctx context.Context, reg *registry.Registry) error
}

type AssetKind string

const (
	AssetJSON    AssetKind = "json"
	AssetEmitter AssetKind = "emitter"
	AssetSound   AssetKind = "sound"
	AssetMusic   AssetKind = "music"
	AssetTexture AssetKind = "texture"
)

// Asset is named "<module>:<name>". Item definitions carry their item kind.
type Asset struct {
	Kind     AssetKind
	Name     string
	ItemKind item.Kind
}

// AssetLister is implemented by modules that ship assets.
type AssetLister interface {
	Assets() []Asset
}
