package driving

import (
	"context"
	"time"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

// DriveSync imports documents from a remote drive account into the library.
type DriveSync interface {
	// SyncFolder performs a shallow sync of one folder: folder entries
	// are skipped, already-imported files are skipped, the rest are
	// added to the library. Returns the number of documents imported.
	SyncFolder(ctx context.Context, userID, folderID string) (int, error)

	// SyncRecursive walks the full subtree under folderID, then imports
	// every non-duplicate file discovered. A run triggered while one is
	// already traversing or importing is rejected with
	// domain.ErrSyncInProgress.
	SyncRecursive(ctx context.Context, userID, folderID string) (*domain.SyncSummary, error)

	// Progress returns a snapshot of the engine state, the progress
	// percentage and the last completed run's summary.
	Progress() domain.SyncProgress

	// StartAutoSync begins re-triggering shallow sync of folderID at the
	// given interval until StopAutoSync is called or ctx is cancelled.
	StartAutoSync(ctx context.Context, userID, folderID string, interval time.Duration) error

	// StopAutoSync stops the recurring sync timer, if running.
	StopAutoSync()
}
