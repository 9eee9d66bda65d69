package domain

import "time"

// MimeTypeFolder is the drive provider's folder sentinel. Entries with this
// MIME type are directory nodes; every other MIME type is a leaf file
// eligible for import.
const MimeTypeFolder = "application/vnd.google-apps.folder"

// DriveFile is a remote drive entry as reported by the drive file API.
// It is consumed, not owned: the sync engine converts eligible files into
// candidate documents and never writes DriveFile values back.
type DriveFile struct {
	// ID is the provider-assigned file identifier.
	ID string

	// Name is the file or folder name.
	Name string

	// MimeType is the content type. MimeTypeFolder marks a directory.
	MimeType string

	// Size is the file size in bytes, when the provider reports one.
	Size int64

	// ModifiedTime is the last remote modification.
	ModifiedTime time.Time

	// WebViewLink is the browser-openable location, when available.
	WebViewLink string
}

// IsFolder reports whether the entry is a directory node.
func (f *DriveFile) IsFolder() bool {
	return f.MimeType == MimeTypeFolder
}
