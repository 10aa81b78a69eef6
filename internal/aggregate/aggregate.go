// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate fans a query out to every registered source adapter
// concurrently and collects a complete, failure-isolated result set.
package aggregate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/answer-engine/internal/sources"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// deadlineMessage marks sources still in flight when the aggregation
// deadline expired.
const deadlineMessage = "aggregation deadline exceeded"

// Aggregate dispatches every adapter concurrently and returns once all
// have reported or the context expires. The returned mapping always
// contains exactly one entry per adapter: a failed, panicked, or
// timed-out source contributes an error marker instead of being dropped.
// Adapters are never cancelled early on another's failure.
func Aggregate(ctx context.Context, query string, adapters []sources.Adapter, cfg types.SourcesConfig, logger zerolog.Logger) types.AggregateResult {
	type outcome struct {
		name   string
		result types.SourceResult
	}

	// One goroutine per adapter; each worker reports over the channel
	// so a single collector owns the result map and no two writers
	// ever touch it concurrently.
	ch := make(chan outcome, len(adapters))
	for _, a := range adapters {
		go func(a sources.Adapter) {
			ch <- outcome{name: a.Name(), result: fetchGuarded(ctx, a, query, cfg)}
		}(a)
	}

	results := make(types.AggregateResult, len(adapters))
	for remaining := len(adapters); remaining > 0; {
		select {
		case o := <-ch:
			if o.result.IsError() {
				logger.Warn().Str("source", o.name).
					Str("error", o.result.Record.Str(types.ErrorKey)).
					Msg("source failed")
			}
			results[o.name] = o.result
			remaining--
		case <-ctx.Done():
			// Deadline: fill the gaps so the completeness invariant
			// holds, and stop waiting for stragglers.
			for _, a := range adapters {
				if _, ok := results[a.Name()]; !ok {
					logger.Warn().Str("source", a.Name()).Msg(deadlineMessage)
					results[a.Name()] = types.ErrorResult(deadlineMessage)
				}
			}
			return results
		}
	}
	return results
}

// fetchGuarded invokes one adapter behind a panic guard. Adapters
// already convert their own failures to error markers; the recover is a
// second boundary so a bug in that handling still cannot abort the
// aggregation.
func fetchGuarded(ctx context.Context, a sources.Adapter, query string, cfg types.SourcesConfig) (result types.SourceResult) {
	defer func() {
		if r := recover(); r != nil {
			result = types.ErrorResult(fmt.Sprintf("%s: panic: %v", a.Name(), r))
		}
	}()
	return a.Fetch(ctx, query, cfg)
}
