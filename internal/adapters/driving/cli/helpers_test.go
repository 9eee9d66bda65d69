package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paperdock/paperdock-cli/internal/adapters/driven/storage/memory"
	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/core/services"
)

// resetCommandFlags restores the package-level flag variables to their
// defaults and clears every flag's changed marker. Flags bind to shared
// variables, so without this a flag set in one test leaks into the next.
func resetCommandFlags() {
	flagVerbose, flagUser, flagStorage = false, "", ""
	addTags = nil
	listRecent, listCategory, listTags = false, "", nil
	listRead, listUnread, listFavorites = false, false, false
	syncRecursive, syncAuto, syncInterval = false, false, 30*time.Minute

	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
		})
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// setupTestServices wires the command tree to in-memory services
// pre-loaded with a small collection. The returned cleanup restores the
// unwired state so each test starts fresh.
func setupTestServices() func() {
	store := memory.NewBlobStore()
	library := services.NewLibraryService(store)

	ctx := context.Background()
	seed := []domain.Document{
		{
			Title:    "Attention Is All You Need",
			Authors:  []string{"Ashish Vaswani"},
			Source:   "arXiv",
			URL:      "https://arxiv.org/abs/1706.03762",
			Category: domain.CategoryComputerScience,
			Tags:     []string{"arxiv"},
		},
		{
			Title:    "Deep learning",
			Authors:  []string{"Yann LeCun"},
			Source:   "DOI",
			URL:      "https://doi.org/10.1038/nature14539",
			Category: domain.CategoryComputerScience,
		},
	}
	for _, doc := range seed {
		// Seeding cannot fail against the in-memory store.
		_, _ = library.Add(ctx, "test-user", doc)
	}

	libraryService = library
	syncService = services.NewDriveSyncService(nil, library)
	metadataExtractor = nil
	activeUser = "test-user"

	return func() {
		libraryService = nil
		syncService = nil
		metadataExtractor = nil
		activeUser = ""
		resetCommandFlags()
	}
}
