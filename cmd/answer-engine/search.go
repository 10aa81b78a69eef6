// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/aggregate"
	"github.com/pdiddy/answer-engine/internal/format"
	"github.com/pdiddy/answer-engine/internal/sources"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Query all public sources and print the aggregated document",
	Long: `Search fans the query out to every source adapter concurrently, waits for
all of them (or the deadline), and prints the merged markdown document.
Sources that fail or return nothing are omitted from the output; nothing is
generated by a model.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "print the raw per-source results as JSON")
	searchCmd.Flags().Int("max-results", 0, "cap results per list source (0 keeps per-source defaults)")
	searchCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 10s)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a query")
	}

	cfg := loadConfig()
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		cfg.Sources.MaxResults = maxResults
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Sources.Timeout = timeout
	}

	ctx := cmd.Context()
	if cfg.Aggregate.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Aggregate.Deadline)
		defer cancel()
	}

	client := &http.Client{Timeout: cfg.Sources.Timeout}
	started := time.Now()
	agg := aggregate.Aggregate(ctx, query, sources.Registry(client), cfg.Sources, logger)
	logger.Debug().Dur("elapsed", time.Since(started)).Int("sources", len(agg)).Msg("aggregation complete")

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(agg)
	}

	fmt.Fprintln(cmd.OutOrStdout(), format.Render(query, agg))
	return nil
}
