package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"filevault/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(domain string) config.CognitoConfig {
	return config.CognitoConfig{
		Domain:       domain,
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		RedirectURI:  "http://localhost:8080/auth/callback",
	}
}

func TestLoginURL(t *testing.T) {
	client := NewClient(testConfig("https://idp.example.com"))

	got := client.LoginURL()
	assert.Equal(t,
		"https://idp.example.com/login?client_id=client-123&response_type=code&scope=email+openid+profile&redirect_uri=http%3A%2F%2Flocalhost%3A8080%2Fauth%2Fcallback",
		got)
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, tokenPath, r.URL.Path)
		require.Equal(t, contentTypeForm, r.Header.Get(headerContentType))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, grantTypeAuthorizationCode, r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-456", r.PostForm.Get("client_secret"))
		assert.Equal(t, "auth-code-789", r.PostForm.Get("code"))
		assert.Equal(t, "http://localhost:8080/auth/callback", r.PostForm.Get("redirect_uri"))

		json.NewEncoder(w).Encode(Tokens{
			IDToken:     "id-token",
			AccessToken: "access-token",
			ExpiresIn:   3600,
			TokenType:   "Bearer",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	tokens, err := client.ExchangeCode(context.Background(), "auth-code-789")
	require.NoError(t, err)
	assert.Equal(t, "id-token", tokens.IDToken)
	assert.Equal(t, "access-token", tokens.AccessToken)
	assert.Equal(t, 3600, tokens.ExpiresIn)
}

func TestExchangeCode_ProviderRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.ExchangeCode(context.Background(), "stale-code")
	assert.Error(t, err)
}

func TestFetchUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, userInfoPath, r.URL.Path)
		require.Equal(t, bearerPrefix+"access-token", r.Header.Get(headerAuthorization))

		json.NewEncoder(w).Encode(map[string]any{
			"sub":   "sub-123",
			"email": "user@example.com",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	info, err := client.FetchUserInfo(context.Background(), "access-token")
	require.NoError(t, err)
	assert.Equal(t, "sub-123", info["sub"])
	assert.Equal(t, "user@example.com", info["email"])
}

func TestFetchUserInfo_InvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.FetchUserInfo(context.Background(), "bad-token")
	assert.Error(t, err)
}
