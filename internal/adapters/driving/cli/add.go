package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

var addCmd = &cobra.Command{
	Use:   "add [locator]",
	Short: "Add a document by URL, DOI link or file name",
	Long: `Extracts metadata from the locator and adds the document to the
library. Supported locators include arXiv pages, DOI links, PubMed
articles, direct file URLs and plain webpages.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// addTags are extra tags attached to the new document.
var addTags []string

func init() {
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Extra tags for the document")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil || metadataExtractor == nil {
		return errors.New("library service not configured")
	}

	locator := args[0]
	ctx := context.Background()

	meta, err := metadataExtractor.Extract(ctx, locator)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLocator) {
			return fmt.Errorf("not a usable URL or file reference: %q", locator)
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	doc := meta.Document()
	doc.Tags = append(doc.Tags, addTags...)

	added, err := libraryService.Add(ctx, activeUser, doc)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			return fmt.Errorf("already in library: %s", meta.URL)
		}
		return fmt.Errorf("failed to add document: %w", err)
	}

	cmd.Printf("Added: %s\n\n", added.Title)
	cmd.Printf("  ID:       %s\n", added.ID)
	cmd.Printf("  Source:   %s\n", added.Source)
	cmd.Printf("  Category: %s\n", added.Category)
	if len(added.Authors) > 0 {
		cmd.Printf("  Authors:  %s\n", strings.Join(added.Authors, ", "))
	}
	if len(added.Tags) > 0 {
		cmd.Printf("  Tags:     %s\n", strings.Join(added.Tags, ", "))
	}
	return nil
}
