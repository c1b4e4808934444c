package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nanotecnologista/jobradar/internal/analysis"
	"github.com/nanotecnologista/jobradar/internal/observability"
	"github.com/nanotecnologista/jobradar/internal/scrape"
	"github.com/nanotecnologista/jobradar/internal/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Search all configured platforms, score the results and report",
	RunE:  runScrape,
}

var (
	scrapeConfigPath string
	scrapeJobType    string
	scrapePlatforms  []string
	scrapeOutput     string
	scrapeVerbose    bool
	scrapeDebug      bool
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeConfigPath, "config", "c", "", "path to JSON config file")
	scrapeCmd.Flags().StringVarP(&scrapeJobType, "job-type", "t", "", "job type keyword set to search (e.g. dev, admin)")
	scrapeCmd.Flags().StringSliceVarP(&scrapePlatforms, "platforms", "p", nil, "platforms to scrape, overrides config")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "write scored postings to a JSON file")
	scrapeCmd.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "print detailed progress")
	scrapeCmd.Flags().BoolVar(&scrapeDebug, "debug", false, "run browser platforms headful")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(scrapeConfigPath)
	if err != nil {
		return err
	}
	if scrapeJobType != "" {
		cfg.JobType = scrapeJobType
	}
	if len(scrapePlatforms) > 0 {
		cfg.Platforms = scrapePlatforms
	}
	cfg.Verbose = cfg.Verbose || scrapeVerbose
	cfg.Debug = cfg.Debug || scrapeDebug
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := scrape.NewRegistry(cfg)
	if err != nil {
		return err
	}

	orch := scrape.NewOrchestrator(cfg, registry)
	jobs, session, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape run failed: %w", err)
	}

	analyzer := analysis.NewAnalyzer(cfg)
	scored := analyzer.AnalyzeBatch(jobs)
	summary := analysis.Summarize(scored, cfg.TopN)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintSession(session)
	if cfg.Verbose {
		printer.PrintPlatformStatus(orch.PlatformStatus())
	}
	printer.PrintBatchSummary(&summary)
	printer.PrintTopJobs(summary.Top)

	if scrapeOutput != "" {
		if err := writeScoredJobs(scrapeOutput, scored); err != nil {
			return err
		}
		fmt.Printf("Wrote %d scored postings to %s\n", len(scored), scrapeOutput)
	}
	return nil
}

func writeScoredJobs(path string, scored []types.ScoredJob) error {
	data, err := json.MarshalIndent(scored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
