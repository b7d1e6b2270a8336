package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"hnjobs/internal/algolia"
	"hnjobs/internal/hiring"
	"hnjobs/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	searchTerms    []string
	searchLocation string
	searchLimit    int
	searchVerbose  bool
	searchFormat   string
)

// searchCmd runs the full pipeline and prints the matching postings.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the latest Who is hiring? thread for job postings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchVerbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		cfg := GetConfig()

		limit := searchLimit
		if limit <= 0 {
			limit = cfg.Search.DefaultLimit
		}

		client := algolia.New(cfg.Algolia)
		svc := hiring.NewService(client, cfg.Search.MaxDescription)

		jobs, err := svc.Search(context.Background(), hiring.Params{
			Terms:    searchTerms,
			Location: searchLocation,
			Limit:    limit,
		})
		if err != nil {
			writeErrorJSON(cmd.ErrOrStderr(), err)
			return err
		}
		if err := writeJobs(cmd, jobs, searchFormat); err != nil {
			writeErrorJSON(cmd.ErrOrStderr(), err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringSliceVarP(&searchTerms, "terms", "t", nil, "search terms; every term must appear (repeatable or comma-separated)")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", `location keyword to require (e.g. "Remote", "San Francisco")`)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "max postings to return (default from config, 25)")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "verbose diagnostics to stderr")
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "output format: json or yaml")
}

// writeJobs encodes the result list to stdout in the requested format.
func writeJobs(cmd *cobra.Command, jobs []model.JobPosting, format string) error {
	if jobs == nil {
		jobs = []model.JobPosting{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		out, err := json.MarshalIndent(jobs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	case "yaml":
		out, err := yaml.Marshal(jobs)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}
