package api

import (
	"fmt"
	"net/http"
	"testing"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The public metadata route caches by URI in a store shared across the
// whole test binary, so every test here gets an ID no other test uses
func uniqueFileID() uint {
	return uint(500000 + dbSeq.Add(1))
}

func TestFilePublicFetch(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, model.DefaultStorageLimit)

	t.Run("unknown file", func(t *testing.T) {
		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/files/public/%d", uniqueFileID()), "", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "File not found", decode(t, w)["message"])
	})

	t.Run("private file is forbidden", func(t *testing.T) {
		file := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "private.pdf", OwnerID: "alice", Type: "pdf"})

		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/files/public/%d", file.ID), "", nil)

		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "This file is not publicly accessible", decode(t, w)["message"])
	})

	t.Run("public file returns trimmed metadata and a week-long URL", func(t *testing.T) {
		file := env.seedFile(t, &model.File{
			ID: uniqueFileID(), Name: "open.pdf", OwnerID: "alice",
			Type: "pdf", MimeType: "application/pdf", Size: 1234, IsPublic: true,
		})

		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/files/public/%d", file.ID), "", nil)

		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		meta := body["file"].(map[string]any)
		assert.Equal(t, "open.pdf", meta["name"])
		assert.Equal(t, "application/pdf", meta["mimeType"])
		assert.EqualValues(t, 1234, meta["size"])
		assert.NotContains(t, meta, "s3Key")
		assert.Equal(t, "604800", presignedExpiry(t, body["downloadUrl"].(string)))
	})
}

func TestFileShareToggle(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, model.DefaultStorageLimit)
	token := signToken(t, "alice")

	t.Run("requires an explicit boolean", func(t *testing.T) {
		file := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "a.txt", OwnerID: "alice", Type: "text"})

		w := env.do(t, http.MethodPatch, fmt.Sprintf("/api/files/%d/share", file.ID), token, gin.H{})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "isPublic must be a boolean", decode(t, w)["message"])
	})

	t.Run("a toggle shows up on the public endpoint right away", func(t *testing.T) {
		file := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "doc.pdf", OwnerID: "alice", Type: "pdf"})
		publicPath := fmt.Sprintf("/api/files/public/%d", file.ID)

		w := env.do(t, http.MethodGet, publicPath, "", nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(t, http.MethodPatch, fmt.Sprintf("/api/files/%d/share", file.ID), token, gin.H{"isPublic": true})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "File is now public", body["message"])
		assert.Equal(t, fmt.Sprintf("http://localhost:3000/public/file/%d", file.ID), body["publicUrl"])

		w = env.do(t, http.MethodGet, publicPath, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disabling hides the URL", func(t *testing.T) {
		file := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "b.txt", OwnerID: "alice", Type: "text", IsPublic: true})

		w := env.do(t, http.MethodPatch, fmt.Sprintf("/api/files/%d/share", file.ID), token, gin.H{"isPublic": false})

		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "File is now private", body["message"])
		assert.Nil(t, body["publicUrl"])
	})
}

func TestFileStream(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 0, model.DefaultStorageLimit)
	token := signToken(t, "alice")

	t.Run("owner stream proxies bytes with inline disposition", func(t *testing.T) {
		file := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "movie clip.mp4", OwnerID: "alice", Type: "video"})

		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/files/%d/stream", file.ID), token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello world", w.Body.String())
		assert.Equal(t, "private, max-age=3600", w.Header().Get("Cache-Control"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "movie%20clip.mp4")
	})

	t.Run("stranger cannot stream", func(t *testing.T) {
		env.seedUser(t, "mallory", 0, model.DefaultStorageLimit)
		file := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "c.txt", OwnerID: "alice", Type: "text"})

		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/files/%d/stream", file.ID), signToken(t, "mallory"), nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("public stream needs no auth but needs the flag", func(t *testing.T) {
		private := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "d.txt", OwnerID: "alice", Type: "text"})

		w := env.do(t, http.MethodGet, fmt.Sprintf("/api/files/public/%d/stream", private.ID), "", nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		open := env.seedFile(t, &model.File{ID: uniqueFileID(), Name: "e.txt", OwnerID: "alice", Type: "text", IsPublic: true})

		w = env.do(t, http.MethodGet, fmt.Sprintf("/api/files/public/%d/stream", open.ID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello world", w.Body.String())
		assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	})
}

func TestStorageInfo(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", 4096, model.DefaultStorageLimit)

	w := env.do(t, http.MethodGet, "/api/files/storage", signToken(t, "alice"), nil)

	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.EqualValues(t, 4096, body["storageUsed"])
	assert.EqualValues(t, model.DefaultStorageLimit, body["storageLimit"])
}

func TestHeartbeat(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodHead, "/api/heartbeat", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
