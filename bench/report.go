// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle   = lipgloss.NewStyle().Align(lipgloss.Right).PaddingRight(2)
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var columns = []string{"threads", "iterations", "elapsed", "speedup"}

// Table renders the runs as an aligned terminal table. The fastest run is
// highlighted when the terminal supports color.
func (r Report) Table() string {
	rows := make([][]string, 0, len(r.Runs)+1)
	rows = append(rows, columns)
	best := r.Fastest()
	for _, run := range r.Runs {
		rows = append(rows, []string{
			strconv.Itoa(run.Threads),
			strconv.Itoa(run.Iterations),
			strconv.FormatFloat(run.ElapsedMS, 'f', 3, 64) + "ms",
			strconv.FormatFloat(run.Speedup, 'f', 2, 64) + "x",
		})
	}

	widths := make([]int, len(columns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "N=%d threshold=%g policy=%s\n", r.Size, r.Threshold, r.Policy)
	for ri, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellStyle.Width(widths[i] + 2).Render(cell)
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		switch {
		case ri == 0:
			line = headerStyle.Render(line)
		case best >= 0 && r.Runs[ri-1].Threads == best:
			line = bestStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// Fastest returns the thread count with the highest speedup, or -1 when
// the report is empty.
func (r Report) Fastest() int {
	best, threads := -1.0, -1
	for _, run := range r.Runs {
		if run.Speedup > best {
			best, threads = run.Speedup, run.Threads
		}
	}

	return threads
}

// WriteReport saves r as YAML at path, creating parent directories.
func WriteReport(fs afero.Fs, path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err = fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err = afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(fs afero.Fs, path string) (Report, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Report{}, fmt.Errorf("read report %s: %w", path, err)
	}
	var r Report
	if err = yaml.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}

	return r, nil
}
