package share

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/s3share/internal/common"
)

var (
	ErrNoFile           = errors.New("no file selected")
	ErrEmptySecret      = errors.New("empty secret")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUploadInProgress = errors.New("upload already in progress")
	ErrMissingFields    = errors.New("email and secret are required")
)

// UploadError wraps a failed storage put.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// DownloadError wraps a failed storage get. It is shown to the requester in
// the download error dialog.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return "download failed: " + e.Err.Error() }
func (e *DownloadError) Unwrap() error { return e.Err }

// Message returns the text displayed for err.
func Message(err error) string {
	var upErr *UploadError
	var downErr *DownloadError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFile):
		return "Please select a file to upload"
	case errors.Is(err, ErrEmptySecret):
		return "Please enter a secret key"
	case errors.Is(err, ErrUploadInProgress):
		return "An upload is already in progress"
	case errors.Is(err, ErrMissingFields):
		return "Please enter the file owner's email and the secret key"
	case errors.Is(err, ErrFileTooLarge):
		return fmt.Sprintf("Upload failed: %v", err)
	case errors.As(err, &upErr):
		return fmt.Sprintf("Upload failed: %s", upErr.Err.Error())
	case errors.As(err, &downErr):
		if msg := downErr.Err.Error(); msg != "" {
			return msg
		}
		return "Failed to download file."
	case errors.Is(err, common.ErrorUnauthorized):
		return "Please sign in to upload files"
	default:
		return err.Error()
	}
}
