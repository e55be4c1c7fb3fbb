package world

import "errors"

// Domain errors. The HTTP layer maps these to status codes; mutators
// return them instead of writing responses.
var (
	ErrMonsterNotFound  = errors.New("monster not found")
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrOutOfStock       = errors.New("out of stock")
	ErrSpikeNotFound    = errors.New("energy spike not found")
	ErrEvidenceNotFound = errors.New("evidence not found")
)
