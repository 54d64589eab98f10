// Package matrix provides the dense float64 storage used by the relaxation
// grid.
//
// The matrix package provides:
//
//   - Dense, a row-major N×M buffer (offset = i*cols + j) with bounds-checked
//     At/Set and zero-copy Row views for hot loops.
//   - Whole-buffer helpers (CopyFrom, Fill, MaxAbsDiff) used by the grid
//     double buffer and by tests that compare solver outputs.
//   - Reductions (AllClose, Summarize) used to compare benchmark runs and
//     to summarize a relaxed grid.
//   - Validators (ValidateSquare, ValidateSameShape, ValidateFinite) shared
//     by ingestion and grid construction.
//
// Numeric policy: Set rejects NaN and ±Inf by default (DefaultValidateNaNInf).
// Row views bypass the policy; they are meant for kernels that only ever
// average finite neighbors.
package matrix
