package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloudly/drive-api/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

var dbSeq atomic.Int64

// s3Stub pretends to be an S3-compatible store. The real client talks to
// it through the custom endpoint with path-style addressing, presigning
// never leaves the process at all
type s3Stub struct {
	mu      sync.Mutex
	deleted []string
	body    []byte
}

func (s *s3Stub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete:
			s.mu.Lock()
			s.deleted = append(s.deleted, r.URL.Path)
			s.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></DeleteResult>`)
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Length", fmt.Sprint(len(s.body)))
			w.WriteHeader(http.StatusOK)
			w.Write(s.body)
		default:
			w.WriteHeader(http.StatusOK)
		}
	})
}

func (s *s3Stub) deletedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.deleted...)
}

type testEnv struct {
	api      *API
	s3       *s3Stub
	identity *httptest.Server

	idLookups atomic.Int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		s3: &s3Stub{body: []byte("hello world")},
	}

	s3Srv := httptest.NewServer(env.s3.handler())
	t.Cleanup(s3Srv.Close)

	env.identity = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.idLookups.Add(1)

		userID := r.URL.Path[len("/v1/users/"):]
		if userID == "user_throttled" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":         userID,
			"email":      userID + "@example.com",
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"username":   "u_" + userID,
			"avatar_url": "https://img.example.com/" + userID,
		})
	}))
	t.Cleanup(env.identity.Close)

	viper.Set("app.log_level", "error")
	viper.Set("host.frontend_origin", "http://localhost:3000")
	viper.Set("storage.driver", "sqlite")
	viper.Set("storage.dsn", fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", dbSeq.Add(1)))
	viper.Set("auth.jwt_secret", testJWTSecret)
	viper.Set("auth.provider_url", env.identity.URL)
	viper.Set("auth.secret_key", "identity-test-key")
	viper.Set("aws.access_key_id", "test")
	viper.Set("aws.secret_access_key", "test")
	viper.Set("aws.region", "us-east-1")
	viper.Set("aws.bucket", "test-bucket")
	viper.Set("aws.endpoint", s3Srv.URL)
	viper.Set("trash.retention_days", 0)

	a, err := NewRouter()
	require.NoError(t, err)

	env.api = a
	return env
}

func signToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return signed
}

func (e *testEnv) seedUser(t *testing.T, id string, used, limit int64) *model.User {
	t.Helper()

	u := &model.User{
		ID:           id,
		Email:        id + "@example.com",
		FirstName:    "Test",
		Username:     "u_" + id,
		StorageUsed:  used,
		StorageLimit: limit,
	}

	require.NoError(t, e.api.DB.Create(u).Error)
	return u
}

func (e *testEnv) seedFile(t *testing.T, f *model.File) *model.File {
	t.Helper()

	if f.S3Key == "" {
		f.S3Key = fmt.Sprintf("users/%s/%d-seed.pdf", f.OwnerID, time.Now().UnixMilli())
	}
	if f.S3URL == "" {
		f.S3URL = "https://test-bucket.example.com/" + f.S3Key
	}

	require.NoError(t, e.api.DB.Create(f).Error)
	return f
}

func (e *testEnv) seedFolder(t *testing.T, f *model.Folder) *model.Folder {
	t.Helper()

	require.NoError(t, e.api.DB.Create(f).Error)
	return f
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.api.Router.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}
