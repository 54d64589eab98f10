package gridio

import "errors"

var (
	// ErrInputSizeMismatch indicates the input did not hold exactly N×N values.
	ErrInputSizeMismatch = errors.New("gridio: input size mismatch")
	// ErrMalformedValue indicates a token that does not parse as a float.
	ErrMalformedValue = errors.New("gridio: malformed value")
	// ErrInvalidPrecision indicates a negative or excessive decimal precision.
	ErrInvalidPrecision = errors.New("gridio: precision must be in [0, 17]")
)
