package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/item"
	"github.com/pixil98/go-sol/internal/save"
	"github.com/pixil98/go-sol/internal/storage"
)

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (c *AssetConfig[T]) NewFileStore(opts ...storage.FileStoreOpt) (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path, opts...)
}

type StorageConfig struct {
	Items     AssetConfig[*item.Def]        `json:"items"`
	Hulls     AssetConfig[*game.HullConfig] `json:"hulls"`
	Templates AssetConfig[*save.ShipSpec]   `json:"templates"`
	Saves     AssetConfig[*save.ShipSpec]   `json:"saves"`
	// DefaultTemplate seeds a new game when there is no save yet.
	DefaultTemplate string `json:"default_template,omitempty"`
	// History is the sqlite file ship saves are logged to. Empty disables it.
	History string `json:"history,omitempty"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if err := c.Items.validate(); err != nil {
		el.Add(fmt.Errorf("items: %w", err))
	}
	if err := c.Hulls.validate(); err != nil {
		el.Add(fmt.Errorf("hulls: %w", err))
	}
	if err := c.Templates.validate(); err != nil {
		el.Add(fmt.Errorf("templates: %w", err))
	}
	if err := c.Saves.validate(); err != nil {
		el.Add(fmt.Errorf("saves: %w", err))
	}

	return el.Err()
}

type stores struct {
	items     *storage.FileStore[*item.Def]
	hulls     *storage.FileStore[*game.HullConfig]
	templates *storage.FileStore[*save.ShipSpec]
	saves     *storage.FileStore[*save.ShipSpec]
}

func (c *StorageConfig) buildStores() (*stores, error) {
	var err error
	s := &stores{}

	s.items, err = c.Items.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}

	s.hulls, err = c.Hulls.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating hull store: %w", err)
	}
	game.BindHullCodes(s.hulls)

	s.templates, err = c.Templates.NewFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating template store: %w", err)
	}

	s.saves, err = c.Saves.NewFileStore(storage.WithCreate())
	if err != nil {
		return nil, fmt.Errorf("creating save store: %w", err)
	}

	return s, nil
}
