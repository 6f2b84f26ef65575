package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// MaxInlineFileSize bounds files stored inline in a document field. The store
// has no separate large-object facility, so anything over this is rejected
// before it is ever read.
const MaxInlineFileSize = 700 * 1024

var ErrFileTooLarge = errors.New("file too large")

// EncodeInlineFile converts an uploaded file into a base64 data URI suitable
// for storing directly in a record. The size precondition is checked against
// the multipart header before the file is opened; a file of exactly
// MaxInlineFileSize bytes is accepted.
func EncodeInlineFile(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxInlineFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, fh.Size, MaxInlineFileSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
