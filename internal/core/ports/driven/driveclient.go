package driven

import (
	"context"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
)

// DriveClient is the consumed drive file API. The sync engine treats it as
// a given: folder structure is identified by domain.MimeTypeFolder, and all
// file CRUD is delegated here.
type DriveClient interface {
	// ListFiles lists entries in a folder. An empty folderID lists the
	// drive root. pageSize bounds the number of entries returned.
	ListFiles(ctx context.Context, folderID string, pageSize int64) ([]domain.DriveFile, error)

	// DownloadFile returns the raw bytes of a file.
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)

	// UploadFile stores data as a new file. An empty folderID uploads to
	// the drive root.
	UploadFile(ctx context.Context, name string, data []byte, folderID string) (*domain.DriveFile, error)

	// DeleteFile removes a file.
	DeleteFile(ctx context.Context, fileID string) error

	// CreateFolder creates a folder. An empty parentID creates it at the
	// drive root.
	CreateFolder(ctx context.Context, name, parentID string) (*domain.DriveFile, error)
}
