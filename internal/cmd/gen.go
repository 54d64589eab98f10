package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/jacobi/gridio"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Write an input grid with constant edges and interior",
	Long: `Generate an N×N grid in the input format. Each edge gets its own value
and every interior cell gets --interior. Corners take the top or bottom
value. The grid is written to the configured input path unless --output
is given.`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

var (
	genBoundary gridio.Boundary
	genOutput   string
)

var genKeys = map[string]string{
	"size":      "grid.size",
	"precision": "grid.precision",
}

func init() {
	f := genCmd.Flags()
	f.IntP("size", "n", 0, "grid side length N")
	f.Int("precision", 0, "decimals per written value")
	f.StringVarP(&genOutput, "output", "o", "", "output path (default: grid.input)")
	f.Float64Var(&genBoundary.Top, "top", 1, "value of the top edge")
	f.Float64Var(&genBoundary.Bottom, "bottom", 0, "value of the bottom edge")
	f.Float64Var(&genBoundary.Left, "left", 0, "value of the left edge")
	f.Float64Var(&genBoundary.Right, "right", 0, "value of the right edge")
	f.Float64Var(&genBoundary.Interior, "interior", 0, "value of every interior cell")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, genKeys)
	if err != nil {
		return err
	}

	m, err := gridio.Generate(cfg.Grid.Size, genBoundary)
	if err != nil {
		return err
	}
	path := genOutput
	if path == "" {
		path = cfg.Grid.Input
	}
	if err = gridio.Write(appFs, path, m, cfg.Grid.Precision); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d×%d grid to %s\n", cfg.Grid.Size, cfg.Grid.Size, path)

	return nil
}
