package gdrive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/paperdock/paperdock-cli/internal/core/domain"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.DriveClient = (*Client)(nil)

// listFields restricts list responses to the fields the sync engine
// reads.
const listFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, webViewLink)"

// maxDownloadSize bounds file downloads (10MB).
const maxDownloadSize = 10 * 1024 * 1024

// Client is a Google Drive v3 implementation of driven.DriveClient.
type Client struct {
	svc     *drive.Service
	limiter *rateLimiter
}

// NewClient creates a drive client authenticated with an OAuth2 access
// token.
func NewClient(ctx context.Context, accessToken string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return NewClientWithTokenSource(ctx, ts)
}

// NewClientWithTokenSource creates a drive client from an arbitrary
// token source, for callers that manage refresh themselves.
func NewClientWithTokenSource(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{svc: svc, limiter: newRateLimiter()}, nil
}

// ListFiles lists entries in a folder, paging through results up to
// pageSize in total. An empty folderID lists the drive root.
func (c *Client) ListFiles(ctx context.Context, folderID string, pageSize int64) ([]domain.DriveFile, error) {
	if folderID == "" {
		folderID = "root"
	}
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))

	var files []domain.DriveFile
	pageToken := ""
	for {
		if err := c.limiter.wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Files.List().
			Q(query).
			Fields(listFields).
			PageSize(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			c.recordIfRateLimited(err)
			return nil, fmt.Errorf("list folder %q: %w", folderID, err)
		}

		for _, f := range resp.Files {
			files = append(files, fileFromAPI(f))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || int64(len(files)) >= pageSize {
			break
		}
	}

	return files, nil
}

// DownloadFile returns the raw bytes of a file.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		c.recordIfRateLimited(err)
		return nil, fmt.Errorf("download file %q: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", fileID, err)
	}
	return data, nil
}

// UploadFile stores data as a new file. An empty folderID uploads to the
// drive root.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte, folderID string) (*domain.DriveFile, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	meta := &drive.File{Name: name}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := c.svc.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Fields("id, name, mimeType, size, modifiedTime, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		c.recordIfRateLimited(err)
		return nil, fmt.Errorf("upload file %q: %w", name, err)
	}

	file := fileFromAPI(created)
	return &file, nil
}

// DeleteFile removes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.limiter.wait(ctx); err != nil {
		return err
	}

	if err := c.svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		c.recordIfRateLimited(err)
		return fmt.Errorf("delete file %q: %w", fileID, err)
	}
	return nil
}

// CreateFolder creates a folder. An empty parentID creates it at the
// drive root.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*domain.DriveFile, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	meta := &drive.File{Name: name, MimeType: domain.MimeTypeFolder}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}

	created, err := c.svc.Files.Create(meta).
		Fields("id, name, mimeType, modifiedTime, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		c.recordIfRateLimited(err)
		return nil, fmt.Errorf("create folder %q: %w", name, err)
	}

	folder := fileFromAPI(created)
	return &folder, nil
}

// recordIfRateLimited opens the limiter's backoff window on 429
// responses.
func (c *Client) recordIfRateLimited(err error) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		c.limiter.recordRateLimitError(0)
	}
}

// fileFromAPI converts an API file resource into the domain type. The
// API reports modification times as RFC3339 strings; an unparseable one
// leaves the zero time.
func fileFromAPI(f *drive.File) domain.DriveFile {
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return domain.DriveFile{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		ModifiedTime: modified,
		WebViewLink:  f.WebViewLink,
	}
}

// escapeQuery escapes single quotes and backslashes inside a Drive query
// literal.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
