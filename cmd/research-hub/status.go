// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-hub/internal/orchestrate"
)

var statusCmd = &cobra.Command{
	Use:   "status [process-id]",
	Short: "Show the status of a research process",
	Long: `Status prints the current state of a fetch or synthesis process. When the
process has completed, the documents it produced are attached to the output.
Failures surface through the error_message field of the terminal state.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	owner, err := requireOwner(cmd)
	if err != nil {
		return err
	}

	orch, st, err := buildOrchestrator(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := orch.Status(context.Background(), owner, args[0])
	if err != nil {
		return err
	}

	return printSnapshot(cmd, snap)
}

func printSnapshot(cmd *cobra.Command, snap *orchestrate.StatusSnapshot) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	if yamlOutput, _ := cmd.Flags().GetBool("yaml"); yamlOutput {
		return yaml.NewEncoder(os.Stdout).Encode(snap)
	}

	p := snap.Process
	fmt.Printf("process    %s\n", p.ID)
	fmt.Printf("kind       %s\n", p.Kind)
	fmt.Printf("status     %s\n", p.Status)
	fmt.Printf("query      %s\n", p.Query)
	if p.ErrorMessage != "" {
		fmt.Printf("error      %s\n", p.ErrorMessage)
	}
	if p.ResultCount != nil {
		fmt.Printf("results    %d\n", *p.ResultCount)
	}

	if len(snap.Documents) > 0 {
		fmt.Printf("\n%-10s  %-60s  %s\n", "Type", "Title", "Source")
		fmt.Println(strings.Repeat("-", 90))
		for _, d := range snap.Documents {
			title := d.Title
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			fmt.Printf("%-10s  %-60s  %s\n", d.Type, title, d.Source)
		}
	}
	return nil
}

// waitForProcess polls a process until it reaches a terminal state, then
// prints the final snapshot. Background tasks run inside this CLI process,
// so the poll loop observes the orchestrator's own store writes.
func waitForProcess(cmd *cobra.Command, orch *orchestrate.Orchestrator, owner, id string) error {
	for {
		snap, err := orch.Status(context.Background(), owner, id)
		if err != nil {
			return err
		}
		if snap.Process.Status.Terminal() {
			return printSnapshot(cmd, snap)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func init() {
	statusCmd.Flags().Bool("json", false, "output the snapshot as JSON")
	statusCmd.Flags().Bool("yaml", false, "output the snapshot as YAML")
	fetchCmd.Flags().Bool("json", false, "with --wait, output the final snapshot as JSON")
	fetchCmd.Flags().Bool("yaml", false, "with --wait, output the final snapshot as YAML")
	synthesizeCmd.Flags().Bool("json", false, "with --wait, output the final snapshot as JSON")
	synthesizeCmd.Flags().Bool("yaml", false, "with --wait, output the final snapshot as YAML")

	rootCmd.AddCommand(statusCmd)
}
