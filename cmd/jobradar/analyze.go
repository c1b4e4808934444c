package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nanotecnologista/jobradar/internal/analysis"
	"github.com/nanotecnologista/jobradar/internal/observability"
	"github.com/nanotecnologista/jobradar/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score postings from a previously saved JSON file",
	Long:  "Reads a JSON array of postings (as produced by scrape --output or any conforming source) and runs classification and scoring without touching the network.",
	RunE:  runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeInput      string
	analyzeOutput     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "", "path to JSON config file")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "JSON file with postings to analyze (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write scored postings to a JSON file")
	_ = analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", analyzeInput, err)
	}
	var jobs []types.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", analyzeInput, err)
	}

	analyzer := analysis.NewAnalyzer(cfg)
	scored := analyzer.AnalyzeBatch(jobs)
	summary := analysis.Summarize(scored, cfg.TopN)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBatchSummary(&summary)
	printer.PrintTopJobs(summary.Top)

	if analyzeOutput != "" {
		if err := writeScoredJobs(analyzeOutput, scored); err != nil {
			return err
		}
		fmt.Printf("Wrote %d scored postings to %s\n", len(scored), analyzeOutput)
	}
	return nil
}
