package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b-j-mills/pcoding-investigating/internal/check"
	"github.com/b-j-mills/pcoding-investigating/internal/fetcher"
	"github.com/b-j-mills/pcoding-investigating/internal/pcodes"
	"github.com/b-j-mills/pcoding-investigating/internal/report"
	"github.com/b-j-mills/pcoding-investigating/internal/sample"
	"github.com/b-j-mills/pcoding-investigating/pkg/hdx"
)

var (
	checkQuery         string
	checkOutput        string
	checkAccumulateGeo bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the location-coding audit and write the status CSV",
	Long: `Searches the catalog with the given filter query, samples every
matching dataset's resources, and writes one status row per resource.

Examples:
  # Audit all datasets tagged with Türkiye
  pcoding-investigating check --query 'groups:"tur"'

  # Write the report somewhere else
  pcoding-investigating check --query 'groups:"ken"' --output kenya_status.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		query := checkQuery
		if query == "" {
			query = cfg.Check.Query
		}
		output := checkOutput
		if output == "" {
			output = cfg.Check.ReportPath
		}

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:    cfg.HDX.UserAgent,
			Timeout:      time.Duration(cfg.HDX.TimeoutSecs) * time.Second,
			RateLimiters: fetcher.DefaultRateLimiters(),
		})

		countries, err := pcodes.FetchCountries(ctx, f, cfg.Check.CountriesURL)
		if err != nil {
			return eris.Wrap(err, "check: load country reference")
		}

		ref, err := pcodes.Fetch(ctx, f, cfg.Check.PcodesURL)
		if err != nil {
			zap.L().Warn("global p-code reference unavailable, skipping mis-code checks", zap.Error(err))
			ref = nil
		}

		loader := sample.NewLoader()
		loader.AccumulateGeo = checkAccumulateGeo

		catalog := hdx.NewClient(cfg.HDX.BaseURL, f)
		engine := check.NewEngine(catalog, loader, countries, ref, cfg.Check.TempDir)

		rows, err := engine.Run(ctx, query)
		if err != nil {
			return eris.Wrap(err, "check: run audit")
		}

		return report.Write(output, rows)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkQuery, "query", "", "catalog filter query (CKAN fq expression)")
	checkCmd.Flags().StringVar(&checkOutput, "output", "", "status report path (default from config)")
	checkCmd.Flags().BoolVar(&checkAccumulateGeo, "accumulate-geo", false, "inspect every geo layer instead of only the most recently read one")
	rootCmd.AddCommand(checkCmd)
}
