package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/jacobi/grid"
	"github.com/katalvlaran/jacobi/gridio"
	"github.com/katalvlaran/jacobi/internal/config"
	"github.com/katalvlaran/jacobi/matrix"
	"github.com/katalvlaran/jacobi/relax"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Relax a grid once with a fixed number of workers",
	Long: `Read an N×N grid, relax it until the spread of the per-worker maximum
differences drops to the threshold, and write the result.

When --max-iterations is reached first the last iterate is still written
and the command exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var runKeys map[string]string

func init() {
	runKeys = solverFlags(runCmd.Flags())
	runCmd.Flags().IntP("threads", "t", 0, "number of worker goroutines")
	runKeys["threads"] = "solver.threads"
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, runKeys)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, "solve")
	if err != nil {
		return err
	}
	defer log.Close()

	initial, err := gridio.Read(appFs, cfg.Grid.Input, cfg.Grid.Size)
	if err != nil {
		return err
	}
	g, err := grid.FromDense(initial)
	if err != nil {
		return err
	}

	res, runErr := relax.Run(g, cfg.Solver.Threshold, cfg.Solver.Threads,
		solverOptions(cfg, log.WithThreads(cfg.Solver.Threads))...)
	if runErr != nil && !errors.Is(runErr, relax.ErrNotConverged) {
		log.Error("relaxation failed", "error", runErr)
		return runErr
	}

	result := g.Result()
	if err = gridio.Write(appFs, cfg.Grid.Output, result, cfg.Grid.Precision); err != nil {
		return err
	}
	sum, err := matrix.Summarize(result)
	if err != nil {
		return err
	}
	log.Debug("result written", "path", cfg.Grid.Output, "min", sum.Min, "max", sum.Max, "mean", sum.Mean)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "threads=%d iterations=%d spread=%g elapsed=%s\n",
		res.Threads, res.Iterations, res.Spread, res.Elapsed)
	fmt.Fprintf(out, "min=%g max=%g mean=%g\n", sum.Min, sum.Max, sum.Mean)
	if len(res.Uncovered) > 0 {
		fmt.Fprintf(out, "uncovered rows: %v\n", res.Uncovered)
	}

	return runErr
}

// solverOptions maps the solver config onto engine options.
func solverOptions(cfg *config.Config, log relax.Logger) []relax.Option {
	opts := []relax.Option{
		relax.WithPolicy(cfg.Policy()),
		relax.WithMaxIterations(cfg.Solver.MaxIterations),
		relax.WithStallWarning(cfg.Solver.StallWarning),
		relax.WithLogger(log),
	}
	if cfg.Solver.StopOnZeroSpread {
		opts = append(opts, relax.WithStopOnZeroSpread())
	}

	return opts
}
