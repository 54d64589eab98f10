package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jacobi/bench"
	"github.com/katalvlaran/jacobi/gridio"
	"github.com/katalvlaran/jacobi/internal/config"
	"github.com/katalvlaran/jacobi/relax"
)

const seedGrid = "0 0 0 0\n0 4 0 0\n0 0 0 0\n0 0 0 0\n"

// setup swaps in an in-memory filesystem and clears viper and flag state
// left behind by earlier executions.
func setup(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	prev := appFs
	appFs = fs
	t.Cleanup(func() { appFs = prev })

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("JACOBI_LOGGING_LEVEL", "ERROR")

	resetFlags(rootCmd)

	return fs
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and returns captured output
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	require.Equal(t, "jacobi", rootCmd.Use)

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "bench", "gen"} {
		require.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRunWritesOutput(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "in.mtx", []byte(seedGrid), 0o644))

	out, err := executeCommand("run", "-i", "in.mtx", "-o", "out.mtx", "-n", "4", "-e", "0.001", "-t", "2")
	require.NoError(t, err)
	require.Contains(t, out, "threads=2 iterations=6")
	require.Contains(t, out, "min=0 ")

	m, err := gridio.Read(fs, "out.mtx", 4)
	require.NoError(t, err)
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.00048828125, v, 1e-10)
}

func TestRunIterationLimit(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "in.mtx", []byte(seedGrid), 0o644))

	out, err := executeCommand("run", "-i", "in.mtx", "-o", "out.mtx", "-n", "4", "-e", "0.001", "--max-iterations", "2")
	require.ErrorIs(t, err, relax.ErrNotConverged)
	require.Contains(t, out, "iterations=2")

	exists, err := afero.Exists(fs, "out.mtx")
	require.NoError(t, err)
	require.True(t, exists, "last iterate is written")
}

func TestRunTruncateReportsUncovered(t *testing.T) {
	fs := setup(t)

	_, err := executeCommand("gen", "-n", "11", "-o", "in.mtx", "--top", "100")
	require.NoError(t, err)

	out, err := executeCommand("run", "-i", "in.mtx", "-o", "out.mtx", "-n", "11", "-e", "0.01", "-t", "4", "--policy", "truncate")
	require.NoError(t, err)
	require.Contains(t, out, "uncovered rows: [9]")

	_, err = gridio.Read(fs, "out.mtx", 11)
	require.NoError(t, err)
}

func TestRunInvalidConfig(t *testing.T) {
	setup(t)

	_, err := executeCommand("run", "-n", "2")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = executeCommand("run", "-n", "4", "--policy", "striped")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunMissingInput(t *testing.T) {
	setup(t)

	_, err := executeCommand("run", "-i", "absent.mtx", "-n", "4")
	require.Error(t, err)
	require.Contains(t, err.Error(), "absent.mtx")
}

func TestBenchWritesTableAndReport(t *testing.T) {
	fs := setup(t)
	require.NoError(t, afero.WriteFile(fs, "in.mtx", []byte(seedGrid), 0o644))

	out, err := executeCommand("bench", "-i", "in.mtx", "-o", "out.mtx", "-n", "4", "-e", "0.001", "-k", "3", "--report", "r/bench.yaml")
	require.NoError(t, err)
	require.Contains(t, out, "speedup")

	rep, err := bench.ReadReport(fs, "r/bench.yaml")
	require.NoError(t, err)
	require.Len(t, rep.Runs, 3)
	for _, r := range rep.Runs {
		require.Equal(t, 6, r.Iterations)
	}
}

func TestBenchFailureIsLogged(t *testing.T) {
	setup(t)
	logPath := filepath.Join(t.TempDir(), "jacobi.log")

	_, err := executeCommand("bench", "-i", "absent.mtx", "-n", "4", "-k", "2", "--log-file", logPath)
	require.Error(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"bench aborted"`)
	require.Contains(t, string(data), `"level":"error"`)
	require.Contains(t, string(data), `"completed_runs":0`)
}

// coolingGrid is an n×n grid with a cold boundary and interior at 1.
func coolingGrid(t *testing.T, fs afero.Fs, path string, n int) {
	t.Helper()
	_, err := executeCommand("gen", "-n", strconv.Itoa(n), "-o", path, "--top", "0", "--interior", "1")
	require.NoError(t, err)
	resetFlags(rootCmd)
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRunCoolingGridDoesNotStopEarly(t *testing.T) {
	fs := setup(t)
	coolingGrid(t, fs, "in.mtx", 12)

	out, err := executeCommand("run", "-i", "in.mtx", "-o", "out.mtx", "-n", "12", "-e", "1e-4", "-t", "3")
	require.NoError(t, err)
	require.NotContains(t, out, "iterations=1 ")

	m, err := gridio.Read(fs, "out.mtx", 12)
	require.NoError(t, err)
	center, err := m.At(6, 6)
	require.NoError(t, err)
	require.Less(t, center, 0.5)
}

func TestRunStopOnZeroSpreadOptIn(t *testing.T) {
	fs := setup(t)
	_, err := executeCommand("gen", "-n", "6", "-o", "in.mtx",
		"--top", "2", "--bottom", "2", "--left", "2", "--right", "2", "--interior", "2")
	require.NoError(t, err)
	resetFlags(rootCmd)

	out, err := executeCommand("run", "-i", "in.mtx", "-o", "out.mtx", "-n", "6", "-e", "1e-3", "--stop-on-zero-spread")
	require.NoError(t, err)
	require.Contains(t, out, "iterations=1 ")

	_, err = gridio.Read(fs, "out.mtx", 6)
	require.NoError(t, err)
}

func TestGenDefaultsToConfiguredInput(t *testing.T) {
	fs := setup(t)
	t.Setenv("JACOBI_GRID_INPUT", "generated.mtx")

	out, err := executeCommand("gen", "-n", "3", "--top", "2", "--interior", "1", "--precision", "1")
	require.NoError(t, err)
	require.Contains(t, out, "generated.mtx")

	raw, err := afero.ReadFile(fs, "generated.mtx")
	require.NoError(t, err)
	require.Equal(t, "2.0 2.0 2.0 0.0 1.0 0.0 0.0 0.0 0.0 ", string(raw))
}
