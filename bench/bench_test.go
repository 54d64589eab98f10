package bench_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jacobi/bench"
	"github.com/katalvlaran/jacobi/grid"
	"github.com/katalvlaran/jacobi/gridio"
)

// seeded writes a 4×4 grid of zeros with 4.0 at (1,1).
func seeded(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "input.mtx",
		[]byte("0 0 0 0\n0 4 0 0\n0 0 0 0\n0 0 0 0\n"), 0o644))

	return fs
}

func TestExecuteSweepsThreadCounts(t *testing.T) {
	fs := seeded(t)
	cfg := bench.Config{
		Input:      "input.mtx",
		Output:     "out/output.mtx",
		Size:       4,
		Threshold:  0.001,
		MaxThreads: 3,
		Precision:  gridio.DefaultPrecision,
	}

	rep, err := bench.Execute(context.Background(), fs, cfg, nil)
	require.NoError(t, err)
	require.Len(t, rep.Runs, 3)
	require.Equal(t, "balanced", rep.Policy)
	for i, run := range rep.Runs {
		require.Equal(t, i+1, run.Threads)
		require.Equal(t, 6, run.Iterations, "every run starts from the same input")
		require.Equal(t, 0.00048828125, run.Spread)
		require.GreaterOrEqual(t, run.Speedup, 0.0)
		require.Zero(t, run.MaxDiff, "Jacobi updates do not depend on the row split")
		require.True(t, run.MatchesSerial)
	}

	out, err := gridio.Read(fs, "out/output.mtx", 4)
	require.NoError(t, err)
	v, err := out.At(1, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.00048828125, v, 1e-10)
}

func TestExecuteRejectsBadConfig(t *testing.T) {
	_, err := bench.Execute(context.Background(), afero.NewMemMapFs(), bench.Config{Input: "x", MaxThreads: 0}, nil)
	require.ErrorIs(t, err, bench.ErrInvalidConfig)

	_, err = bench.Execute(context.Background(), afero.NewMemMapFs(), bench.Config{MaxThreads: 1}, nil)
	require.ErrorIs(t, err, bench.ErrInvalidConfig)
}

func TestExecuteMissingInput(t *testing.T) {
	_, err := bench.Execute(context.Background(), afero.NewMemMapFs(),
		bench.Config{Input: "missing.mtx", Size: 4, MaxThreads: 2}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "threads=1")
}

func TestExecuteHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := bench.Execute(ctx, seeded(t), bench.Config{Input: "input.mtx", Size: 4, Threshold: 0.001, MaxThreads: 4}, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, rep.Runs)
}

func TestReportTableAndYAML(t *testing.T) {
	rep := bench.Report{
		Size:      4,
		Threshold: 0.001,
		Policy:    grid.PolicyTruncate.String(),
		Runs: []bench.Run{
			{Threads: 1, Iterations: 6, ElapsedMS: 2, Speedup: 1},
			{Threads: 2, Iterations: 6, ElapsedMS: 1, Speedup: 2},
		},
	}
	require.Equal(t, 2, rep.Fastest())
	require.Equal(t, -1, bench.Report{}.Fastest())

	table := rep.Table()
	for _, want := range []string{"threads", "iterations", "elapsed", "speedup", "2.000ms", "2.00x", "policy=truncate"} {
		require.Contains(t, table, want)
	}
	require.Len(t, strings.Split(strings.TrimSpace(table), "\n"), 4)

	fs := afero.NewMemMapFs()
	require.NoError(t, bench.WriteReport(fs, "reports/bench.yaml", rep))
	raw, err := afero.ReadFile(fs, "reports/bench.yaml")
	require.NoError(t, err)
	require.Contains(t, string(raw), "elapsed_ms: 2")

	back, err := bench.ReadReport(fs, "reports/bench.yaml")
	require.NoError(t, err)
	require.Equal(t, rep.Runs, back.Runs)
	require.Equal(t, rep.Policy, back.Policy)
}
