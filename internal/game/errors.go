package game

import "errors"

var (
	ErrNoHull       = errors.New("ship has no hull")
	ErrNoRepository = errors.New("ship repository is required")
	ErrNoCatalog    = errors.New("item catalog is required")
)
