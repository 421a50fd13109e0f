package api

import (
	"net/http"
	"testing"
	"time"

	"cloudly/drive-api/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthGuard(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing credential", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/files/storage", "", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decode(t, w)["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/files/storage", "not.a.jwt", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with the wrong key", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		signed, err := token.SignedString([]byte("some-other-secret"))
		require.NoError(t, err)

		w := env.do(t, http.MethodGet, "/api/files/storage", signed, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		signed, err := token.SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		w := env.do(t, http.MethodGet, "/api/files/storage", signed, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthGuardProvisioning(t *testing.T) {
	env := newTestEnv(t)

	t.Run("first request provisions from the identity provider", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/files/storage", signToken(t, "user_new"), nil)

		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.EqualValues(t, 0, body["storageUsed"])
		assert.EqualValues(t, model.DefaultStorageLimit, body["storageLimit"])

		var user model.User
		require.NoError(t, env.api.DB.First(&user, "id = ?", "user_new").Error)
		assert.Equal(t, "user_new@example.com", user.Email)
		assert.Equal(t, "u_user_new", user.Username)
		assert.Equal(t, "Ada", user.FirstName)
	})

	t.Run("known users skip the identity provider", func(t *testing.T) {
		before := env.idLookups.Load()

		w := env.do(t, http.MethodGet, "/api/files/storage", signToken(t, "user_new"), nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before, env.idLookups.Load())
	})

	t.Run("identity provider throttling surfaces as 429", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/files/storage", signToken(t, "user_throttled"), nil)

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "Too many requests. Please try again.", decode(t, w)["message"])
	})
}
