// Package gridio reads and writes square grids in the flat text format used
// by the solver's input and output files.
//
// Format:
//
//   - Values are decimal floats separated by any whitespace, row-major.
//   - Read expects exactly N×N values. Fewer values, or any token after the
//     N×N-th, is ErrInputSizeMismatch; a token that is not a float is
//     ErrMalformedValue; NaN and ±Inf are rejected with matrix.ErrNaNInf.
//   - Write prints every value with a fixed number of decimals followed by a
//     single space, row after row, with no line breaks (the classic dump
//     layout). Precision 10 matches the "%11.10f " layout.
//
// All file access goes through an afero.Fs so callers and tests can swap
// the OS filesystem for an in-memory one.
package gridio
