package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/paperdock/paperdock-cli/internal/adapters/driven/config/file"
	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync [folder-id]",
	Short: "Import documents from a Google Drive folder",
	Long: `Imports files from a Google Drive folder into the library. Already
imported files are skipped. Without a folder argument the configured
default folder is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

var (
	syncRecursive bool
	syncAuto      bool
	syncInterval  time.Duration
)

func init() {
	syncCmd.Flags().BoolVarP(&syncRecursive, "recursive", "r", false, "Walk nested folders before importing")
	syncCmd.Flags().BoolVar(&syncAuto, "auto", false, "Keep re-syncing at the given interval until interrupted")
	syncCmd.Flags().DurationVar(&syncInterval, "interval", 30*time.Minute, "Interval between automatic syncs")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}

	folderID := ""
	if len(args) > 0 {
		folderID = args[0]
	} else if configStore != nil {
		folderID = configStore.GetString(configfile.KeyDriveFolderID)
	}

	ctx := context.Background()

	if syncAuto {
		return runAutoSync(ctx, cmd, folderID)
	}

	if syncRecursive {
		return runRecursiveSync(ctx, cmd, folderID)
	}

	cmd.Println("Syncing folder...")
	imported, err := syncService.SyncFolder(ctx, activeUser, folderID)
	if err != nil {
		return syncError(err)
	}
	cmd.Printf("Imported %d documents.\n", imported)
	return nil
}

// runRecursiveSync walks the folder tree while reporting progress.
func runRecursiveSync(ctx context.Context, cmd *cobra.Command, folderID string) error {
	cmd.Println("Syncing folder tree...")

	type result struct {
		summary *domain.SyncSummary
		err     error
	}
	resCh := make(chan result, 1)
	go func() {
		summary, err := syncService.SyncRecursive(ctx, activeUser, folderID)
		resCh <- result{summary: summary, err: err}
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resCh:
			if res.err != nil {
				return syncError(res.err)
			}
			cmd.Printf("\rDone: %d imported, %d skipped, %d total.\n",
				res.summary.Imported, res.summary.Skipped, res.summary.Total)
			return nil
		case <-ticker.C:
			progress := syncService.Progress()
			cmd.Printf("\r%s... %d%%", phaseLabel(progress.Phase), progress.Percent)
		}
	}
}

// runAutoSync keeps the recurring timer alive until interrupted.
func runAutoSync(ctx context.Context, cmd *cobra.Command, folderID string) error {
	if err := syncService.StartAutoSync(ctx, activeUser, folderID, syncInterval); err != nil {
		return syncError(err)
	}
	defer syncService.StopAutoSync()

	cmd.Printf("Auto-sync every %s. Press Ctrl+C to stop.\n", syncInterval)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	cmd.Println("\nStopping auto-sync.")
	return nil
}

func syncError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoDriveClient):
		return errors.New("Google Drive is not connected; set sync.drive_token in the config file")
	case errors.Is(err, domain.ErrSyncInProgress):
		return errors.New("a sync is already running")
	default:
		return fmt.Errorf("sync failed: %w", err)
	}
}

func phaseLabel(phase domain.SyncPhase) string {
	switch phase {
	case domain.SyncTraversing:
		return "Scanning folders"
	case domain.SyncImporting:
		return "Importing"
	case domain.SyncDone:
		return "Finishing"
	default:
		return "Waiting"
	}
}
