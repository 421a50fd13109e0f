// Package validators holds request validation shared between handlers
package validators

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNoFileName      = errors.New("fileName and fileType are required")
	ErrFileNameTooLong = errors.New("file name is too long")
	ErrNegativeSize    = errors.New("fileSize can't be negative")
)

const maxFileNameLen = 255

// UploadRequest checks the declared metadata of an upload slot request.
// The size here is advisory only, the real size is whatever the client
// actually PUTs to storage
func UploadRequest(fileName, fileType string, fileSize int64) (int, error) {
	if strings.TrimSpace(fileName) == "" || strings.TrimSpace(fileType) == "" {
		return http.StatusBadRequest, ErrNoFileName
	}

	if len(fileName) > maxFileNameLen {
		return http.StatusBadRequest, ErrFileNameTooLong
	}

	if fileSize < 0 {
		return http.StatusBadRequest, ErrNegativeSize
	}

	return 0, nil
}
