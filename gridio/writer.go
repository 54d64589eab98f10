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

// DefaultPrecision is the number of decimals written per value.
const DefaultPrecision = 10

// maxPrecision keeps 'f' formatting within float64's significant digits.
const maxPrecision = 17

// Write stores m at path on fs, replacing any existing file.
func Write(fs afero.Fs, path string, m *matrix.Dense, precision int) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err = Encode(f, m, precision); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	return nil
}

// Encode writes every value of m, row-major, as "<value> ".
func Encode(w io.Writer, m *matrix.Dense, precision int) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return err
	}
	if precision < 0 || precision > maxPrecision {
		return fmt.Errorf("Encode(precision=%d): %w", precision, ErrInvalidPrecision)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for i := 0; i < m.Rows(); i++ {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		for _, v := range row {
			buf = strconv.AppendFloat(buf[:0], v, 'f', precision, 64)
			buf = append(buf, ' ')
			if _, err = bw.Write(buf); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
