package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nanotecnologista/jobradar/internal/scrape"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List every registered platform",
	RunE:  runPlatforms,
}

var platformsConfigPath string

func init() {
	platformsCmd.Flags().StringVarP(&platformsConfigPath, "config", "c", "", "path to JSON config file")
	rootCmd.AddCommand(platformsCmd)
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(platformsConfigPath)
	if err != nil {
		return err
	}

	registry, err := scrape.NewRegistry(cfg)
	if err != nil {
		return err
	}

	enabled := make(map[string]bool, len(cfg.Platforms))
	for _, name := range cfg.Platforms {
		enabled[name] = true
	}
	hasCreds := func(name string) bool {
		_, ok := cfg.Credentials[name]
		return ok
	}

	for _, name := range registry.Platforms() {
		status := "disabled"
		if enabled[name] {
			status = "enabled"
		}
		creds := ""
		if hasCreds(name) {
			creds = ", credentials set"
		}
		fmt.Printf("%-12s %s%s\n", name, status, creds)
	}
	return nil
}
