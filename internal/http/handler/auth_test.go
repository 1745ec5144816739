package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"filevault/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	loginURL     string
	tokens       *identity.Tokens
	userInfo     map[string]any
	exchangeErr  error
	userInfoErr  error
	exchangedFor string
}

func (f *fakeIdentity) LoginURL() string { return f.loginURL }

func (f *fakeIdentity) ExchangeCode(ctx context.Context, code string) (*identity.Tokens, error) {
	f.exchangedFor = code
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.tokens, nil
}

func (f *fakeIdentity) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	if f.userInfoErr != nil {
		return nil, f.userInfoErr
	}
	return f.userInfo, nil
}

func TestLogin_RedirectsToHostedUI(t *testing.T) {
	idp := &fakeIdentity{loginURL: "https://idp.example.com/login?client_id=abc"}
	h := NewAuthHandler(idp)

	c, rec := newTestContext(http.MethodGet, "/auth/login", nil, "", "")
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, idp.loginURL, rec.Header().Get("Location"))
}

func TestCallback_Success(t *testing.T) {
	idp := &fakeIdentity{
		tokens:   &identity.Tokens{IDToken: "id-token", AccessToken: "access-token"},
		userInfo: map[string]any{"sub": "sub-123", "email": "user@example.com"},
	}
	h := NewAuthHandler(idp)

	c, rec := newTestContext(http.MethodGet, "/auth/callback?code=auth-code", nil, "", "")
	require.NoError(t, h.Callback(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auth-code", idp.exchangedFor)

	resp := decodeJSON(t, rec)
	assert.Equal(t, msgLoginSuccessful, resp[jsonKeyMessage])
	assert.Equal(t, "id-token", resp["id_token"])
	assert.Equal(t, "access-token", resp["access_token"])

	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sub-123", user["sub"])
}

func TestCallback_MissingCode(t *testing.T) {
	h := NewAuthHandler(&fakeIdentity{})

	c, rec := newTestContext(http.MethodGet, "/auth/callback", nil, "", "")
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgAuthCodeMissing, decodeJSON(t, rec)[jsonKeyError])
}

func TestCallback_ExchangeFailure(t *testing.T) {
	h := NewAuthHandler(&fakeIdentity{exchangeErr: fmt.Errorf("invalid_grant")})

	c, rec := newTestContext(http.MethodGet, "/auth/callback?code=stale", nil, "", "")
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgAuthFailed, decodeJSON(t, rec)[jsonKeyError])
}

func TestCallback_UserInfoFailure(t *testing.T) {
	h := NewAuthHandler(&fakeIdentity{
		tokens:      &identity.Tokens{AccessToken: "access-token"},
		userInfoErr: fmt.Errorf("unauthorized"),
	})

	c, rec := newTestContext(http.MethodGet, "/auth/callback?code=auth-code", nil, "", "")
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgAuthFailed, decodeJSON(t, rec)[jsonKeyError])
}
