// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges results from multiple source adapters into one
// deduplicated sequence. Adapters are invoked concurrently and are fault
// isolated from one another; when every source comes back empty the package
// substitutes synthetic placeholder results so the pipeline stays productive.
package aggregate

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/research-hub/internal/source"
	"github.com/pdiddy/research-hub/pkg/types"
)

// Output holds the aggregated results and per-adapter diagnostics.
type Output struct {
	Results       []types.RawResult
	AdapterErrors []string

	// Degraded reports whether the results are synthetic placeholders.
	Degraded bool
}

// Aggregate resolves the requested source identifiers to adapters, fans the
// query out to all of them concurrently, waits for every adapter to finish,
// then flattens, deduplicates and truncates the combined results. The flatten
// order follows adapter invocation order, which makes the dedup tie-break
// deterministic across runs.
//
// An adapter that errors contributes nothing; a warning is written to w. If
// the post-dedup sequence is empty the whole output is replaced with
// synthetic placeholder results (at least three, capped at maxResults),
// marked as such.
func Aggregate(ctx context.Context, registry *source.Registry, query string, sourceIDs []types.SourceID, maxResults int, w io.Writer) (out Output) {
	if maxResults <= 0 {
		maxResults = 10
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "warning: aggregation panicked (%v), generating placeholders\n", r)
			out = Output{
				Results:       SyntheticResults(query, sourceIDs, maxResults),
				AdapterErrors: []string{fmt.Sprintf("aggregation: %v", r)},
				Degraded:      true,
			}
		}
	}()

	adapters := registry.Resolve(sourceIDs)

	// Fan-out: one goroutine per adapter, results collected by index so the
	// join preserves invocation order. This is an all-finish barrier, not a
	// race; no partial result set is accepted early.
	perAdapter := make([][]types.RawResult, len(adapters))
	errs := make([]error, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a source.Adapter) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("adapter panicked: %v", r)
				}
			}()
			perAdapter[i], errs[i] = a.Fetch(ctx, query, maxResults)
		}(i, a)
	}
	wg.Wait()

	var all []types.RawResult
	var adapterErrors []string
	for i, a := range adapters {
		if errs[i] != nil {
			msg := fmt.Sprintf("%s: %v", a.Name(), errs[i])
			adapterErrors = append(adapterErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", a.Name(), errs[i])
			continue
		}
		all = append(all, perAdapter[i]...)
	}

	deduped := Dedupe(all)

	if len(deduped) == 0 {
		fmt.Fprintf(w, "warning: no results from any source, generating placeholders\n")
		return Output{
			Results:       SyntheticResults(query, sourceIDs, maxResults),
			AdapterErrors: adapterErrors,
			Degraded:      true,
		}
	}

	if len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}

	return Output{Results: deduped, AdapterErrors: adapterErrors}
}
