package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b-j-mills/pcoding-investigating/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pcoding-investigating",
	Short: "Audit catalog datasets for location-coding columns",
	Long:  "Samples resources published to an HDX-style catalog and reports, per resource, whether they carry administrative p-code or latitude/longitude columns.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
