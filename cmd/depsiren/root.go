package main

import (
	"github.com/spf13/cobra"

	"depsiren/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "depsiren",
	Short: "Heuristic supply-chain risk scanner for project dependencies",
	Long: `DepSiren scans a project's dependency manifests, enriches each declared
dependency with metadata from the public registries and scores it against a
set of supply-chain risk heuristics (typosquatting, abandonware,
single-maintainer exposure, freshly published packages).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(config.Load)
}
