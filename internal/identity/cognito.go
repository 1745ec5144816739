// Package identity exchanges authorization codes for tokens and fetches
// profile claims from the Cognito hosted endpoints. It is only used by
// the login/callback path; API authentication verifies bearer tokens
// directly.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filevault/internal/config"
)

const (
	loginPath    = "/login"
	tokenPath    = "/oauth2/token"
	userInfoPath = "/oauth2/userInfo"

	grantTypeAuthorizationCode = "authorization_code"
	loginScope                 = "email+openid+profile"

	requestTimeout       = 15 * time.Second
	maxResponseBodyBytes = 1 << 20

	errTokenRequestFmt    = "token exchange request failed: %w"
	errTokenStatusFmt     = "token endpoint returned status %d"
	errTokenDecodeFmt     = "failed to decode token response: %w"
	errUserInfoRequestFmt = "userInfo request failed: %w"
	errUserInfoStatusFmt  = "userInfo endpoint returned status %d"
	errUserInfoDecodeFmt  = "failed to decode userInfo response: %w"

	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	contentTypeForm     = "application/x-www-form-urlencoded"
	bearerPrefix        = "Bearer "
)

// Tokens is the identity provider's response to a code exchange.
type Tokens struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Client talks to the Cognito hosted domain.
type Client struct {
	cfg        config.CognitoConfig
	httpClient *http.Client
}

func NewClient(cfg config.CognitoConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// LoginURL builds the hosted-UI login redirect target.
func (c *Client) LoginURL() string {
	return fmt.Sprintf(
		"%s%s?client_id=%s&response_type=code&scope=%s&redirect_uri=%s",
		c.cfg.Domain, loginPath, url.QueryEscape(c.cfg.ClientID), loginScope, url.QueryEscape(c.cfg.RedirectURI),
	)
}

// ExchangeCode trades an authorization code for ID and access tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", grantTypeAuthorizationCode)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Domain+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf(errTokenRequestFmt, err)
	}
	req.Header.Set(headerContentType, contentTypeForm)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errTokenRequestFmt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(errTokenStatusFmt, resp.StatusCode)
	}

	var tokens Tokens
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&tokens); err != nil {
		return nil, fmt.Errorf(errTokenDecodeFmt, err)
	}

	return &tokens, nil
}

// FetchUserInfo retrieves the caller's profile claims using an access token.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Domain+userInfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf(errUserInfoRequestFmt, err)
	}
	req.Header.Set(headerAuthorization, bearerPrefix+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errUserInfoRequestFmt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(errUserInfoStatusFmt, resp.StatusCode)
	}

	var userInfo map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf(errUserInfoDecodeFmt, err)
	}

	return userInfo, nil
}
