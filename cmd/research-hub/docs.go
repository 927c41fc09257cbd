// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-hub/pkg/types"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage stored research documents (list, search, delete)",
	Long: `Docs reads and maintains the persisted research documents. Listing and
searching are owner scoped; search uses full-text matching over title,
excerpt and content.`,
}

// --- list subcommand ---

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents, most recent first",
	RunE:  runDocsList,
}

func runDocsList(cmd *cobra.Command, args []string) error {
	return queryDocs(cmd, "")
}

// --- search subcommand ---

var docsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over stored documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return queryDocs(cmd, strings.Join(args, " "))
	},
}

func queryDocs(cmd *cobra.Command, match string) error {
	owner, err := requireOwner(cmd)
	if err != nil {
		return err
	}

	cfg := hubConfig(cmd)
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	docType, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	processID, _ := cmd.Flags().GetString("process")
	limit, _ := cmd.Flags().GetInt("limit")

	docs, err := st.QueryDocuments(context.Background(), owner, types.DocumentQuery{
		Type:      types.DocumentType(docType),
		Category:  category,
		ProcessID: processID,
		Match:     match,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	fmt.Printf("%-36s  %-10s  %-50s  %s\n", "ID", "Type", "Title", "Added")
	fmt.Println(strings.Repeat("-", 110))
	for _, d := range docs {
		title := d.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Printf("%-36s  %-10s  %-50s  %s\n", d.ID, d.Type, title, d.DateAdded.Format("2006-01-02"))
	}
	fmt.Printf("\n%d documents\n", len(docs))
	return nil
}

// --- delete subcommand ---

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := requireOwner(cmd)
		if err != nil {
			return err
		}

		cfg := hubConfig(cmd)
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteDocument(context.Background(), args[0], owner); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	docsCmd.PersistentFlags().String("type", "", "filter by document type: paper, article, news, synthesis, graph, alert")
	docsCmd.PersistentFlags().String("category", "", "filter by category")
	docsCmd.PersistentFlags().String("process", "", "filter by originating process ID")
	docsCmd.PersistentFlags().Int("limit", 0, "maximum results (0 = use default)")
	docsCmd.PersistentFlags().Bool("json", false, "output documents as JSON")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsSearchCmd)
	docsCmd.AddCommand(docsDeleteCmd)

	rootCmd.AddCommand(docsCmd)
}
