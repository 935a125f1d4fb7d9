package save

import "errors"

var (
	ErrShipNotFound  = errors.New("ship not found")
	ErrHistoryClosed = errors.New("history is closed")
)
