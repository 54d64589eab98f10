// SPDX-License-Identifier: MIT

package gridio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/afero"

	"github.com/katalvlaran/jacobi/matrix"
)

// Read loads an n×n grid from path on fs.
func Read(fs afero.Fs, path string, n int) (*matrix.Dense, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	m, err := Decode(f, n)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return m, nil
}

// Decode parses exactly n×n whitespace-separated values from r.
// Complexity: O(n²) time, O(n²) memory for the result.
func Decode(r io.Reader, n int) (*matrix.Dense, error) {
	m, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	want := n * n
	for k := 0; k < want; k++ {
		if !sc.Scan() {
			if err = sc.Err(); err != nil {
				return nil, fmt.Errorf("scan input: %w", err)
			}
			return nil, fmt.Errorf("got %d values, want %d: %w", k, want, ErrInputSizeMismatch)
		}
		tok := sc.Text()
		v, perr := strconv.ParseFloat(tok, 64)
		if perr != nil {
			return nil, fmt.Errorf("value %d (row %d, col %d) %q: %w", k, k/n, k%n, tok, ErrMalformedValue)
		}
		if err = m.Set(k/n, k%n, v); err != nil {
			return nil, err
		}
	}
	if sc.Scan() {
		return nil, fmt.Errorf("unexpected data after %d values: %w", want, ErrInputSizeMismatch)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return m, nil
}
