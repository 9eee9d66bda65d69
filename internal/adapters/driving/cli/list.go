package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the library",
	Long: `Lists the library most-recent-first. Flags narrow the listing;
combined flags must all match.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listRecent    bool
	listCategory  string
	listTags      []string
	listRead      bool
	listUnread    bool
	listFavorites bool
)

func init() {
	listCmd.Flags().BoolVar(&listRecent, "recent", false, "Show only the five most recent documents")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "Filter by tag (any listed tag matches)")
	listCmd.Flags().BoolVar(&listRead, "read", false, "Show only read documents")
	listCmd.Flags().BoolVar(&listUnread, "unread", false, "Show only unread documents")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Show only favourite documents")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ctx := context.Background()

	docs, err := listDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	printDocuments(cmd, docs)
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func listDocuments(ctx context.Context) ([]domain.Document, error) {
	if listRecent {
		return libraryService.Recent(ctx, activeUser)
	}

	criteria := listCriteria()
	if criteria.Category == "" && criteria.IsRead == nil &&
		criteria.IsFavorite == nil && len(criteria.Tags) == 0 {
		return libraryService.List(ctx, activeUser)
	}
	return libraryService.Filter(ctx, activeUser, criteria)
}

func listCriteria() domain.FilterCriteria {
	criteria := domain.FilterCriteria{
		Category: domain.Category(listCategory),
		Tags:     listTags,
	}
	if listRead {
		t := true
		criteria.IsRead = &t
	}
	if listUnread {
		f := false
		criteria.IsRead = &f
	}
	if listFavorites {
		t := true
		criteria.IsFavorite = &t
	}
	return criteria
}

func printDocuments(cmd *cobra.Command, docs []domain.Document) {
	for i := range docs {
		doc := &docs[i]

		marker := " "
		if doc.IsFavorite {
			marker = "*"
		}
		cmd.Printf("%s %s  %s\n", marker, doc.ID, doc.Title)
		cmd.Printf("    %s | %s", doc.Source, doc.Category)
		if len(doc.Authors) > 0 {
			cmd.Printf(" | %s", strings.Join(doc.Authors, ", "))
		}
		cmd.Println()
	}
	cmd.Println()
}
