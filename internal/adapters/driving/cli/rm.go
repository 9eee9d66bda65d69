package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

var rmCmd = &cobra.Command{
	Use:   "rm [doc-id]",
	Short: "Remove a document from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	id := args[0]
	ctx := context.Background()

	doc, err := libraryService.Get(ctx, activeUser, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no document with ID %q", id)
		}
		return fmt.Errorf("failed to look up document: %w", err)
	}

	if err := libraryService.Delete(ctx, activeUser, id); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed: %s\n", doc.Title)
	return nil
}
