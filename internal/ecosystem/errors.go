package ecosystem

import "errors"

var (
	// ErrOutOfRange is returned for any cell index outside [0, width*height).
	ErrOutOfRange = errors.New("ecosystem: position out of range")

	// ErrInvalidDimensions is returned when a grid is smaller than MinDimension
	// on either axis.
	ErrInvalidDimensions = errors.New("ecosystem: invalid grid dimensions")

	// ErrInvalidSpecies is returned for a species value outside the known set.
	ErrInvalidSpecies = errors.New("ecosystem: invalid species")

	// ErrInvalidParams is returned when species parameters are inconsistent.
	ErrInvalidParams = errors.New("ecosystem: invalid parameters")
)
