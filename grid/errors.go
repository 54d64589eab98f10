package grid

import "errors"

var (
	// ErrInvalidSize indicates a grid side below 3, which leaves no interior cell.
	ErrInvalidSize = errors.New("grid: size must be >= 3")
	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("grid: worker count must be > 0")
	// ErrUnknownPolicy indicates an unrecognized RemainderPolicy.
	ErrUnknownPolicy = errors.New("grid: unknown remainder policy")
)
