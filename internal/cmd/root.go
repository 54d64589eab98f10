package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/jacobi/internal/config"
	"github.com/katalvlaran/jacobi/internal/logging"
)

// appFs is the filesystem grids and reports are read from and written to.
var appFs afero.Fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "jacobi",
	Short: "Parallel Jacobi relaxation of a square grid",
	Long: `Jacobi relaxes the interior of an N×N grid toward the average of its four
neighbors. Boundary cells stay fixed. Rows are split among worker goroutines
that meet at a barrier twice per iteration and agree on when to stop.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/jacobi/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().String("log-file", "", "append JSON logs to this file instead of stderr")
}

func initConfig() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. JACOBI_SOLVER_THRESHOLD for solver.threshold
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// bindFlags binds command-local flags to config keys. Run and bench share
// flag names, so binding happens when a command executes, not in init.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	return nil
}

// loadConfig binds flags, loads and validates the configuration.
func loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	if err := bindFlags(cmd.Flags(), keys); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds the run logger from cfg.
func newLogger(cfg *config.Config, phase string) (*logging.Logger, error) {
	log, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	return log.WithRun(strconv.FormatInt(time.Now().UnixNano(), 36)).WithPhase(phase), nil
}

// solverFlags registers the flags shared by run and bench and returns
// their config keys.
func solverFlags(flags *pflag.FlagSet) map[string]string {
	flags.StringP("input", "i", "", "input grid path")
	flags.StringP("output", "o", "", "output grid path")
	flags.IntP("size", "n", 0, "grid side length N")
	flags.Float64P("threshold", "e", 0, "convergence threshold on the spread")
	flags.Int("precision", 0, "decimals per written value")
	flags.String("policy", "", "remainder rows: balanced or truncate")
	flags.Int("max-iterations", 0, "stop with an error after this many iterations (0 = unlimited)")
	flags.Bool("stop-on-zero-spread", false, "stop when the spread is exactly zero (grids already at rest only)")
	flags.Duration("stall-warning", 0, "warn when no barrier round completes within this interval")

	return map[string]string{
		"input":               "grid.input",
		"output":              "grid.output",
		"size":                "grid.size",
		"threshold":           "solver.threshold",
		"precision":           "grid.precision",
		"policy":              "solver.policy",
		"max-iterations":      "solver.max_iterations",
		"stop-on-zero-spread": "solver.stop_on_zero_spread",
		"stall-warning":       "solver.stall_warning",
	}
}
