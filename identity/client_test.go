package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)

	viper.Set("auth.provider_url", srv.URL)
	viper.Set("auth.secret_key", "provider-secret")

	return NewClient(), srv
}

func TestFetchUser(t *testing.T) {
	var gotPath, gotAuth string

	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user_1","email":"a@b.c","first_name":"Ada","username":"ada","avatar_url":"https://img/a"}`))
	})
	defer srv.Close()

	p, err := c.FetchUser(context.Background(), "user_1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/users/user_1", gotPath)
	assert.Equal(t, "Bearer provider-secret", gotAuth)
	assert.Equal(t, "user_1", p.ID)
	assert.Equal(t, "a@b.c", p.Email)
	assert.Equal(t, "Ada", p.FirstName)
}

func TestFetchUserRateLimited(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := c.FetchUser(context.Background(), "user_1")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchUserServerError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := c.FetchUser(context.Background(), "user_1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchUserContextCancelled(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.FetchUser(ctx, "user_1")
	assert.Error(t, err)
}
