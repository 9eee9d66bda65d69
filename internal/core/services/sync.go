package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driven"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driving"
	"github.com/paperdock/paperdock-cli/internal/logger"
)

// Ensure DriveSyncService implements the interface.
var _ driving.DriveSync = (*DriveSyncService)(nil)

const (
	// listPageSize bounds every folder listing request.
	listPageSize = 100

	// traverseProgressCap is the highest percentage traversal may reach;
	// the remaining range belongs to the import phase.
	traverseProgressCap = 40

	// maxTraversalDepth bounds recursion so a malformed remote hierarchy
	// cannot make the walk non-terminating.
	maxTraversalDepth = 32
)

// DriveSyncService imports documents from a remote drive account.
//
// Shallow sync handles one folder; recursive sync walks a whole subtree,
// building the full candidate list before any import begins. Both paths
// terminate in the library's Add call, and both skip entries that are
// already imported (matched by drive file ID, or by title under the
// Google Drive source label).
type DriveSyncService struct {
	drive   driven.DriveClient
	library driving.Library

	mu      sync.Mutex
	phase   domain.SyncPhase
	percent int
	summary *domain.SyncSummary

	autoMu   sync.Mutex
	autoStop chan struct{}
	autoWG   sync.WaitGroup
}

// NewDriveSyncService creates a sync engine over the given drive client
// and library.
func NewDriveSyncService(drive driven.DriveClient, library driving.Library) *DriveSyncService {
	return &DriveSyncService{
		drive:   drive,
		library: library,
		phase:   domain.SyncIdle,
	}
}

// SyncFolder performs a shallow sync of one folder.
// Folder entries are skipped, duplicates are skipped, and each remaining
// file becomes a library document tagged ["google-drive", "synced"].
// Returns the number of documents imported.
func (s *DriveSyncService) SyncFolder(ctx context.Context, userID, folderID string) (int, error) {
	if s.drive == nil {
		return 0, domain.ErrNoDriveClient
	}

	files, err := s.drive.ListFiles(ctx, folderID, listPageSize)
	if err != nil {
		return 0, fmt.Errorf("%w: list folder %q: %v", domain.ErrSyncFailed, folderID, err)
	}

	seen, err := s.loadDuplicateIndex(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: load library: %v", domain.ErrSyncFailed, err)
	}

	imported := 0
	for i := range files {
		file := &files[i]
		if file.IsFolder() {
			continue
		}
		if seen.has(file) {
			logger.Debug("Skipping already-imported file %s (%s)", file.Name, file.ID)
			continue
		}

		doc := driveDocument(file, []string{"google-drive", "synced"})
		if _, err := s.library.Add(ctx, userID, doc); err != nil {
			if errors.Is(err, domain.ErrDuplicateDocument) {
				logger.Debug("Skipping duplicate URL for %s", file.Name)
				continue
			}
			return imported, fmt.Errorf("%w: import %s: %v", domain.ErrSyncFailed, file.Name, err)
		}
		seen.add(file)
		imported++
	}

	logger.Info("Shallow sync of folder %q imported %d documents", folderID, imported)
	return imported, nil
}

// SyncRecursive walks the subtree under folderID, then imports every
// non-duplicate file found. Traversal completes fully before import
// starts; import order follows discovery order. A failure aborts the run
// but leaves already-imported documents committed.
func (s *DriveSyncService) SyncRecursive(ctx context.Context, userID, folderID string) (*domain.SyncSummary, error) {
	if s.drive == nil {
		return nil, domain.ErrNoDriveClient
	}

	s.mu.Lock()
	if s.phase == domain.SyncTraversing || s.phase == domain.SyncImporting {
		s.mu.Unlock()
		return nil, domain.ErrSyncInProgress
	}
	s.phase = domain.SyncTraversing
	s.percent = 0
	s.summary = nil
	s.mu.Unlock()

	candidates, err := s.traverse(ctx, folderID)
	if err != nil {
		s.abort()
		return nil, fmt.Errorf("%w: traversal: %v", domain.ErrSyncFailed, err)
	}
	logger.Info("Traversal found %d candidate files", len(candidates))

	s.setPhase(domain.SyncImporting, traverseProgressCap)

	seen, err := s.loadDuplicateIndex(ctx, userID)
	if err != nil {
		s.abort()
		return nil, fmt.Errorf("%w: load library: %v", domain.ErrSyncFailed, err)
	}

	imported, skipped := 0, 0
	for i := range candidates {
		file := &candidates[i]

		if seen.has(file) {
			skipped++
		} else {
			doc := driveDocument(file, []string{"google-drive", "synced", "recursive"})
			if _, err := s.library.Add(ctx, userID, doc); err != nil {
				if errors.Is(err, domain.ErrDuplicateDocument) {
					skipped++
				} else {
					s.abort()
					return nil, fmt.Errorf("%w: import %s: %v", domain.ErrSyncFailed, file.Name, err)
				}
			} else {
				seen.add(file)
				imported++
			}
		}

		s.setPercent(importPercent(i+1, len(candidates)))
	}

	summary := &domain.SyncSummary{
		Imported: imported,
		Skipped:  skipped,
		Total:    len(candidates),
	}

	s.mu.Lock()
	s.phase = domain.SyncDone
	s.percent = 100
	s.summary = summary
	s.mu.Unlock()

	logger.Info("Recursive sync done: %d imported, %d skipped, %d total",
		summary.Imported, summary.Skipped, summary.Total)
	return summary, nil
}

// Progress returns a snapshot of the engine state.
func (s *DriveSyncService) Progress() domain.SyncProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.SyncProgress{Phase: s.phase, Percent: s.percent}
	if s.summary != nil {
		sum := *s.summary
		p.Summary = &sum
	}
	return p
}

// StartAutoSync begins re-triggering shallow sync at the given interval.
// Calling it while auto-sync is already running is a no-op.
func (s *DriveSyncService) StartAutoSync(ctx context.Context, userID, folderID string, interval time.Duration) error {
	if s.drive == nil {
		return domain.ErrNoDriveClient
	}
	if interval <= 0 {
		return fmt.Errorf("%w: auto-sync interval must be positive", domain.ErrInvalidInput)
	}

	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	if s.autoStop != nil {
		return nil // Already running
	}

	stop := make(chan struct{})
	s.autoStop = stop
	s.autoWG.Add(1)

	go func() {
		defer s.autoWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				n, err := s.SyncFolder(ctx, userID, folderID)
				if err != nil {
					logger.Warn("Auto-sync failed: %v", err)
					continue
				}
				logger.Debug("Auto-sync imported %d documents", n)
			}
		}
	}()

	return nil
}

// StopAutoSync stops the recurring sync timer and waits for the loop to
// exit.
func (s *DriveSyncService) StopAutoSync() {
	s.autoMu.Lock()
	if s.autoStop != nil {
		close(s.autoStop)
		s.autoStop = nil
	}
	s.autoMu.Unlock()
	s.autoWG.Wait()
}

// traverse walks the folder tree breadth-first and returns every leaf
// file in discovery order. Visited folder IDs are tracked and depth is
// bounded, so the walk terminates even on a malformed hierarchy.
func (s *DriveSyncService) traverse(ctx context.Context, rootID string) ([]domain.DriveFile, error) {
	type folderRef struct {
		id    string
		depth int
	}

	queue := []folderRef{{id: rootID}}
	visited := make(map[string]bool)
	var candidates []domain.DriveFile

	for len(queue) > 0 {
		folder := queue[0]
		queue = queue[1:]

		if visited[folder.id] {
			logger.Warn("Folder %q listed twice, skipping revisit", folder.id)
			continue
		}
		visited[folder.id] = true

		if folder.depth > maxTraversalDepth {
			logger.Warn("Folder %q exceeds max depth %d, skipping", folder.id, maxTraversalDepth)
			continue
		}

		files, err := s.drive.ListFiles(ctx, folder.id, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("list folder %q: %w", folder.id, err)
		}

		for _, file := range files {
			if file.IsFolder() {
				queue = append(queue, folderRef{id: file.ID, depth: folder.depth + 1})
				continue
			}
			candidates = append(candidates, file)
			s.setPercent(traversePercent(len(candidates)))
		}
	}

	return candidates, nil
}

func (s *DriveSyncService) setPhase(phase domain.SyncPhase, percent int) {
	s.mu.Lock()
	s.phase = phase
	s.percent = percent
	s.mu.Unlock()
}

func (s *DriveSyncService) setPercent(percent int) {
	s.mu.Lock()
	s.percent = percent
	s.mu.Unlock()
}

// abort returns the engine to idle so a re-trigger can resume the run.
// Starting a run clears the previous summary, so an aborted run reports
// none until some run reaches Done.
func (s *DriveSyncService) abort() {
	s.mu.Lock()
	s.phase = domain.SyncIdle
	s.percent = 0
	s.mu.Unlock()
}

// traversePercent advances one point per discovered file, capped below
// full so the import phase owns the rest of the range.
func traversePercent(discovered int) int {
	if discovered > traverseProgressCap {
		return traverseProgressCap
	}
	return discovered
}

// importPercent maps imported-so-far onto the cap..100 range.
func importPercent(done, total int) int {
	if total == 0 {
		return 100
	}
	return traverseProgressCap + done*(100-traverseProgressCap)/total
}

// duplicateIndex is the sync engine's soft duplicate check: a file is a
// duplicate if its drive file ID is already imported, or if a document
// with the same derived title exists under the Google Drive source.
type duplicateIndex struct {
	driveIDs map[string]bool
	titles   map[string]bool
}

func (s *DriveSyncService) loadDuplicateIndex(ctx context.Context, userID string) (*duplicateIndex, error) {
	docs, err := s.library.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := &duplicateIndex{
		driveIDs: make(map[string]bool),
		titles:   make(map[string]bool),
	}
	for _, doc := range docs {
		if doc.DriveFileID != "" {
			idx.driveIDs[doc.DriveFileID] = true
		}
		if doc.Source == domain.SourceGoogleDrive {
			idx.titles[strings.ToLower(doc.Title)] = true
		}
	}
	return idx, nil
}

func (idx *duplicateIndex) has(file *domain.DriveFile) bool {
	if idx.driveIDs[file.ID] {
		return true
	}
	return idx.titles[strings.ToLower(driveTitle(file.Name))]
}

func (idx *duplicateIndex) add(file *domain.DriveFile) {
	idx.driveIDs[file.ID] = true
	idx.titles[strings.ToLower(driveTitle(file.Name))] = true
}

// driveDocument converts a remote file into a partial library document.
// The library's Add stamps ID and DateAdded.
func driveDocument(file *domain.DriveFile, tags []string) domain.Document {
	return domain.Document{
		Title:       driveTitle(file.Name),
		Source:      domain.SourceGoogleDrive,
		URL:         file.WebViewLink,
		Tags:        tags,
		Category:    domain.ClassifyFileName(file.Name),
		FileSize:    file.Size,
		DriveFileID: file.ID,
		MimeType:    file.MimeType,
	}
}

// driveTitle derives a document title from a file name: the extension is
// stripped and separators become spaces. The derivation is stable, which
// keeps the (title, source) duplicate check consistent across runs.
func driveTitle(name string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
