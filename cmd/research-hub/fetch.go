// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [query]",
	Short: "Start a realtime fetch across external research sources",
	Long: `Fetch starts an asynchronous process that queries the requested external
sources (arxiv, wikipedia, newswire, codeindex) concurrently, merges and
deduplicates the results, and persists them as documents. The process
identifier is printed immediately; poll it with the status subcommand, or
pass --wait to block until the process reaches a terminal state.

When every source is unreachable or empty the process still completes with
synthetic placeholder documents, tagged "synthetic".`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	owner, err := requireOwner(cmd)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("query is required")
	}

	sourcesFlag, _ := cmd.Flags().GetString("sources")
	var sourceIDs []types.SourceID
	for _, s := range strings.Split(sourcesFlag, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sourceIDs = append(sourceIDs, types.SourceID(s))
		}
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	category, _ := cmd.Flags().GetString("category")

	orch, st, err := buildOrchestrator(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := orch.StartFetch(context.Background(), owner, query, sourceIDs, maxResults, category)
	if err != nil {
		return err
	}
	fmt.Println(id)

	wait, _ := cmd.Flags().GetBool("wait")
	if !wait {
		orch.Wait()
		return nil
	}
	return waitForProcess(cmd, orch, owner, id)
}

func init() {
	fetchCmd.Flags().String("query", "", "search query")
	fetchCmd.Flags().String("sources", "arxiv,wikipedia", "comma-separated source identifiers")
	fetchCmd.Flags().Int("max-results", 0, "maximum number of aggregated results (0 = use default)")
	fetchCmd.Flags().String("category", "", "classification label for the fetched documents")
	fetchCmd.Flags().Bool("wait", false, "block until the process finishes and print its status")

	rootCmd.AddCommand(fetchCmd)
}
