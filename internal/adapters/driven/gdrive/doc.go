// Package gdrive implements the drive client port against the Google
// Drive v3 API.
package gdrive
