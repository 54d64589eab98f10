package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/jacobi/bench"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the solver for 1..K workers",
	Long: `Run the solver once per worker count from 1 to --max-threads. Every run
reloads the input grid and rewrites the output grid.

Prints a table of iterations, elapsed time and speedup relative to one
worker, and optionally saves the same data as YAML.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

var benchKeys map[string]string

func init() {
	benchKeys = solverFlags(benchCmd.Flags())
	benchCmd.Flags().IntP("max-threads", "k", 0, "largest worker count")
	benchCmd.Flags().String("report", "", "write a YAML report to this path")
	benchKeys["max-threads"] = "bench.max_threads"
	benchKeys["report"] = "bench.report"
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, benchKeys)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, "bench")
	if err != nil {
		return err
	}
	defer log.Close()

	bc := bench.Config{
		Input:      cfg.Grid.Input,
		Output:     cfg.Grid.Output,
		Size:       cfg.Grid.Size,
		Threshold:  cfg.Solver.Threshold,
		MaxThreads: cfg.Bench.MaxThreads,
		Precision:  cfg.Grid.Precision,
		Policy:     cfg.Policy(),
		Options:    solverOptions(cfg, log),
	}
	rep, err := bench.Execute(cmd.Context(), appFs, bc, log)
	if len(rep.Runs) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), rep.Table())
	}
	if err != nil {
		log.Error("bench aborted", "error", err, "completed_runs", len(rep.Runs))
		return err
	}

	if cfg.Bench.Report != "" {
		if err = bench.WriteReport(appFs, cfg.Bench.Report, rep); err != nil {
			return err
		}
		log.Info("report written", "path", cfg.Bench.Report)
	}

	return nil
}
