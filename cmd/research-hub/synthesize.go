// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/pkg/types"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [topic]",
	Short: "Start a synthesis run over a document corpus",
	Long: `Synthesize starts an asynchronous process that gathers a document corpus
(an explicit --documents set, or the most recent documents in --category)
and derives a synthesis document from it via the AI backend. At medium and
high depth a knowledge-graph document is additionally produced.

The process identifier is printed immediately; poll it with the status
subcommand, or pass --wait to block until the process finishes.`,
	RunE: runSynthesize,
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	owner, err := requireOwner(cmd)
	if err != nil {
		return err
	}

	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" && len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	if topic == "" {
		return fmt.Errorf("topic is required")
	}

	docsFlag, _ := cmd.Flags().GetString("documents")
	var documentIDs []string
	for _, id := range strings.Split(docsFlag, ",") {
		if id = strings.TrimSpace(id); id != "" {
			documentIDs = append(documentIDs, id)
		}
	}

	depthFlag, _ := cmd.Flags().GetString("depth")
	depth := types.SynthesisDepth(depthFlag)
	category, _ := cmd.Flags().GetString("category")

	orch, st, err := buildOrchestrator(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := orch.StartSynthesis(context.Background(), owner, topic, documentIDs, depth, category)
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
	synthesizeCmd.Flags().String("topic", "", "synthesis topic")
	synthesizeCmd.Flags().String("documents", "", "comma-separated document IDs forming the corpus")
	synthesizeCmd.Flags().String("depth", "low", "synthesis depth: low, medium, or high")
	synthesizeCmd.Flags().String("category", "", "category for the corpus and the derived documents")
	synthesizeCmd.Flags().Bool("wait", false, "block until the process finishes and print its status")

	rootCmd.AddCommand(synthesizeCmd)
}
