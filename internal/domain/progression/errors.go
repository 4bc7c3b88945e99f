package progression

import "errors"

// Sentinel errors for rank evaluation.
var (
	ErrInvalidVolume = errors.New("invalid lifetime volume")
	ErrInvalidTiers  = errors.New("invalid rank tiers")
)
