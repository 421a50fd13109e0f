package validators

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		code, err := UploadRequest("report.pdf", "application/pdf", 1024)
		assert.NoError(t, err)
		assert.Zero(t, code)
	})

	t.Run("zero size is allowed", func(t *testing.T) {
		_, err := UploadRequest("empty.txt", "text/plain", 0)
		assert.NoError(t, err)
	})

	t.Run("blank name or type", func(t *testing.T) {
		code, err := UploadRequest("  ", "application/pdf", 1)
		assert.ErrorIs(t, err, ErrNoFileName)
		assert.Equal(t, http.StatusBadRequest, code)

		_, err = UploadRequest("report.pdf", "", 1)
		assert.ErrorIs(t, err, ErrNoFileName)
	})

	t.Run("overlong name", func(t *testing.T) {
		_, err := UploadRequest(strings.Repeat("a", 256), "text/plain", 1)
		assert.ErrorIs(t, err, ErrFileNameTooLong)
	})

	t.Run("negative size", func(t *testing.T) {
		_, err := UploadRequest("report.pdf", "application/pdf", -1)
		assert.ErrorIs(t, err, ErrNegativeSize)
	})
}
