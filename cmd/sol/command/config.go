package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"golang.org/x/text/language"
)

type Config struct {
	// Ship names a template to start from instead of the last save.
	Ship      string           `json:"ship,omitempty"`
	Tutorial  bool             `json:"tutorial,omitempty"`
	DebugFile string           `json:"debug_file,omitempty"`
	Terminal  bool             `json:"terminal,omitempty"`
	Language  string           `json:"language,omitempty"`
	Console   ConsoleConfig    `json:"console"`
	Listeners []ListenerConfig `json:"listeners"`
	Storage   StorageConfig    `json:"storage"`
	Nats      NatsConfig       `json:"nats"`
	Systems   []SystemConfig   `json:"systems"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.Tutorial && c.Ship != "" {
		el.Add(fmt.Errorf("tutorial and ship cannot both be set"))
	}

	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			el.Add(fmt.Errorf("parsing language: %w", err))
		}
	}

	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	for i, s := range c.Systems {
		if err := s.validate(); err != nil {
			el.Add(fmt.Errorf("system %d: %w", i, err))
		}
	}

	el.Add(c.Console.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) languageTag() language.Tag {
	if c.Language == "" {
		return language.English
	}
	return language.Make(c.Language)
}

type ConsoleConfig struct {
	Width       int `json:"width,omitempty"`
	MaxSessions int `json:"max_sessions,omitempty"`
}

func (c *ConsoleConfig) validate() error {
	el := errors.NewErrorList()

	if c.Width < 0 {
		el.Add(fmt.Errorf("console width must not be negative"))
	}
	if c.MaxSessions < 0 {
		el.Add(fmt.Errorf("console max_sessions must not be negative"))
	}

	return el.Err()
}
