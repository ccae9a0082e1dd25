package main

import (
	"fmt"
	"os"

	"github.com/testrig-dev/testrig/internal/cli"
	"github.com/testrig-dev/testrig/pkg/output"

	// Import for init() side effect: argument processor registration
	_ "github.com/testrig-dev/testrig/pkg/processors"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := output.NewRenderer(output.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
