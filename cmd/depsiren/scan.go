package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"depsiren/internal/cache"
	"depsiren/internal/config"
	"depsiren/internal/manifest"
	"depsiren/internal/model"
	"depsiren/internal/registry"
	"depsiren/internal/report"
	"depsiren/internal/scoring"
)

var (
	scanOutput    string
	scanMarkdown  string
	scanFailScore int
	scanJobs      int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository for suspicious dependencies",
	Long: `Discovers dependency manifests under the given path (default "."), looks up
each distinct dependency in its registry and prints a risk table sorted by
descending score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write a JSON report to this path")
	scanCmd.Flags().StringVar(&scanMarkdown, "markdown", "", "Write a Markdown report to this path")
	scanCmd.Flags().IntVar(&scanFailScore, "fail-score", 0, "Exit with code 2 if any package scores at or above this (0 disables)")
	scanCmd.Flags().IntVar(&scanJobs, "jobs", 0, "Concurrent registry lookups (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	absPath, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	manifests, err := manifest.Discover(absPath)
	if err != nil {
		return fmt.Errorf("manifest discovery failed: %w", err)
	}
	if len(manifests) == 0 {
		return fmt.Errorf("no supported dependency manifests discovered under %s", absPath)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Discovered %d manifest(s). Collecting dependencies...\n", len(manifests))

	// Dedupe by slug; the first spec seen for an identity wins.
	seen := make(map[string]struct{})
	var specs []model.DependencySpec
	for _, m := range manifests {
		parsed, err := manifest.Parse(m)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipping %s: %v\n", m, err)
			continue
		}
		for _, spec := range parsed {
			if _, ok := seen[spec.Slug()]; ok {
				continue
			}
			seen[spec.Slug()] = struct{}{}
			specs = append(specs, spec)
		}
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		return fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	metaCache, err := cache.New(cacheDir, config.CacheTTL())
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	client := registry.NewClient(metaCache, config.HTTPTimeout())
	client.PyPIURL = config.PyPIURL()
	client.NpmRegistryURL = config.NpmRegistryURL()
	client.NpmDownloadsURL = config.NpmDownloadsURL()

	jobs := scanJobs
	if jobs <= 0 {
		jobs = config.Jobs()
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Contacting registries for %d package(s)...\n", len(specs))
	results := client.FetchAll(cmd.Context(), specs, jobs)

	assessments := make([]model.PackageAssessment, 0, len(specs))
	for _, spec := range specs {
		assessments = append(assessments, scoring.Assess(spec, results[spec.Slug()]))
	}
	report.SortByScore(assessments)

	report.RenderTable(cmd.OutOrStdout(), assessments)

	meta := report.Meta{
		ScannedPath: absPath,
		Timestamp:   time.Now().Format(time.RFC3339),
		Manifests:   manifests,
	}
	if scanOutput != "" {
		if err := report.Export(scanOutput, assessments); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report exported to %s\n", scanOutput)
	}
	if scanMarkdown != "" {
		if err := report.WriteMarkdown(scanMarkdown, meta, assessments); err != nil {
			return fmt.Errorf("failed to write Markdown report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report exported to %s\n", scanMarkdown)
	}

	if scanFailScore > 0 {
		for _, a := range assessments {
			if a.Score >= scanFailScore {
				fmt.Fprintf(cmd.ErrOrStderr(), "FAILURE: %s scored %d (threshold %d).\n",
					a.Dependency.Slug(), a.Score, scanFailScore)
				os.Exit(2)
			}
		}
	}

	return nil
}
