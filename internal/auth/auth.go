package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pongclient/internal/protocol"
	"pongclient/internal/storage"
)

// Client talks to the auth/profile REST collaborator. Token handling follows
// refresh-on-401 retry-once semantics: an expired access token is refreshed
// with the stored refresh token and the original request repeated exactly
// once.
type Client struct {
	base  string
	http  *http.Client
	store *storage.Store
	log   *zap.Logger
}

func NewClient(base string, store *storage.Store, log *zap.Logger) *Client {
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 10 * time.Second},
		store: store,
		log:   log,
	}
}

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (c *Client) Login(ctx context.Context, username, password string) (protocol.UserProfile, error) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login/", bytes.NewReader(body))
	if err != nil {
		return protocol.UserProfile{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return protocol.UserProfile{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return protocol.UserProfile{}, fmt.Errorf("login failed: status %d", resp.StatusCode)
	}

	var tokens loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return protocol.UserProfile{}, fmt.Errorf("decoding login response: %w", err)
	}
	if err := c.store.SetTokens(tokens.Access, tokens.Refresh); err != nil {
		return protocol.UserProfile{}, err
	}
	return c.GetProfile(ctx)
}

func (c *Client) refresh(ctx context.Context) error {
	refresh := c.store.RefreshToken()
	if refresh == "" {
		return fmt.Errorf("no refresh token")
	}
	body, _ := json.Marshal(map[string]string{"refresh": refresh})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/token/refresh/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh failed: status %d", resp.StatusCode)
	}
	var tokens loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return err
	}
	return c.store.SetTokens(tokens.Access, "")
}

// authedGet performs a bearer-authenticated GET with one refresh retry.
func (c *Client) authedGet(ctx context.Context, path string, out any) error {
	do := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.store.AccessToken())
		return c.http.Do(req)
	}

	resp, err := do()
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.log.Debug("access token expired, refreshing")
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = do()
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) GetProfile(ctx context.Context) (protocol.UserProfile, error) {
	var p protocol.UserProfile
	if err := c.authedGet(ctx, "/profile/", &p); err != nil {
		return protocol.UserProfile{}, err
	}
	if err := c.store.SetProfile(p); err != nil {
		c.log.Warn("caching profile failed", zap.Error(err))
	}
	return p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string) (protocol.UserProfile, error) {
	body, _ := json.Marshal(fields)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+"/profile/", bytes.NewReader(body))
	if err != nil {
		return protocol.UserProfile{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.store.AccessToken())

	resp, err := c.http.Do(req)
	if err != nil {
		return protocol.UserProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return protocol.UserProfile{}, fmt.Errorf("profile update: status %d", resp.StatusCode)
	}
	var p protocol.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return protocol.UserProfile{}, err
	}
	_ = c.store.SetProfile(p)
	return p, nil
}

type onlineUsersResponse struct {
	OnlineUsers []protocol.UserProfile `json:"online_users"`
}

func (c *Client) OnlineUsers(ctx context.Context) ([]protocol.UserProfile, error) {
	var out onlineUsersResponse
	if err := c.authedGet(ctx, "/online-users/", &out); err != nil {
		return nil, err
	}
	return out.OnlineUsers, nil
}

type friendsResponse struct {
	Friends []protocol.UserProfile `json:"friends"`
}

func (c *Client) Friends(ctx context.Context) ([]protocol.UserProfile, error) {
	var out friendsResponse
	if err := c.authedGet(ctx, "/friends/", &out); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

// Logout removes the user from the online list, then clears local tokens.
// Tokens are cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/logout/", nil)
	if err == nil {
		req.Header.Set("Authorization", "Bearer "+c.store.AccessToken())
		if resp, doErr := c.http.Do(req); doErr == nil {
			resp.Body.Close()
		} else {
			err = doErr
		}
	}
	if clearErr := c.store.ClearTokens(); clearErr != nil {
		return clearErr
	}
	_ = c.store.RemoveProfile()
	return err
}
