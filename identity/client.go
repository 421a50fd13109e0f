// Package identity talks to the external identity provider's user-lookup API
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// ErrRateLimited is returned when the provider answers 429. The caller is
// expected to surface it as 429 rather than a generic failure
var ErrRateLimited = errors.New("identity provider rate limited")

// Profile is the subset of provider user data we keep locally
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: viper.GetString("auth.provider_url"),
		secret:  viper.GetString("auth.secret_key"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchUser looks up the profile behind an already verified user id
func (c *Client) FetchUser(ctx context.Context, userID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user lookup request, %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed, %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("user lookup returned status %d", resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode user lookup response, %w", err)
	}

	return &p, nil
}
