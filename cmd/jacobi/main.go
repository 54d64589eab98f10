package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/jacobi/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jacobi:", err)
		os.Exit(1)
	}
}
