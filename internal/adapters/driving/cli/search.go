package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the library",
	Long:  `Searches titles, authors, abstracts and tags case-insensitively.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	query := strings.Join(args, " ")
	ctx := context.Background()

	docs, err := libraryService.Search(ctx, activeUser, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents match %q.\n", query)
		return nil
	}

	cmd.Printf("Results for %q:\n\n", query)
	printDocuments(cmd, docs)
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}
