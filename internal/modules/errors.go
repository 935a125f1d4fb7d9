package modules

import "errors"

var (
	ErrMissingCapability = errors.New("missing capability")
	ErrDuplicateModule   = errors.New("module already registered")
)
