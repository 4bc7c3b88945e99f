package plates

import "errors"

// Sentinel errors returned by the solver.
var (
	ErrInvalidWeight  = errors.New("invalid weight")
	ErrInvalidPlate   = errors.New("invalid plate denomination")
	ErrUnsortedPlates = errors.New("plates must be sorted heaviest first")
)
