package aws

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// ObjectKey scopes an object under its owner (and folder, when given) and
// prefixes a timestamp so two uploads of the same file name never collide
func ObjectKey(userID string, folderID *uint, fileName string) string {
	sanitized := unsafeKeyChars.ReplaceAllString(fileName, "_")

	folderPath := ""
	if folderID != nil {
		folderPath = fmt.Sprintf("%d/", *folderID)
	}

	return fmt.Sprintf("users/%s/%s%d-%s", userID, folderPath, time.Now().UnixMilli(), sanitized)
}

var mimeTypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"application/vnd.ms-excel": "xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
	"application/vnd.ms-powerpoint":                                     "ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "pptx",
	"text/plain": "txt",
}

// DocumentType maps a MIME type onto the closed set of document types
// the frontend knows how to render icons for
func DocumentType(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case strings.Contains(mimeType, "zip"),
		strings.Contains(mimeType, "rar"),
		strings.Contains(mimeType, "tar"):
		return "archive"
	}

	if t, ok := mimeTypes[mimeType]; ok {
		return t
	}

	return "other"
}
