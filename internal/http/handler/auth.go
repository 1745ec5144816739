package handler

import (
	"net/http"

	"filevault/internal/identity"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves the hosted-UI login redirect and the OAuth2
// callback. It is the only surface that talks to the identity provider
// directly; everything under /api trusts verified bearer tokens instead.
type AuthHandler struct {
	idp IdentityExchanger
}

func NewAuthHandler(idp IdentityExchanger) *AuthHandler {
	return &AuthHandler{idp: idp}
}

// Login redirects the browser to the identity provider's hosted login page.
func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.idp.LoginURL())
}

type callbackResponse struct {
	Message     string         `json:"message"`
	User        map[string]any `json:"user"`
	IDToken     string         `json:"id_token"`
	AccessToken string         `json:"access_token"`
}

// Callback exchanges the authorization code for tokens and relays the
// caller's profile claims.
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam(queryCode)
	if code == "" {
		return respondError(c, http.StatusBadRequest, msgAuthCodeMissing)
	}

	ctx := c.Request().Context()

	tokens, err := h.idp.ExchangeCode(ctx, code)
	if err != nil {
		c.Logger().Errorf("OAuth code exchange failed: %v", err)
		return respondError(c, http.StatusInternalServerError, msgAuthFailed)
	}

	userInfo, err := h.idp.FetchUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		c.Logger().Errorf("OAuth userInfo fetch failed: %v", err)
		return respondError(c, http.StatusInternalServerError, msgAuthFailed)
	}

	return c.JSON(http.StatusOK, callbackResponse{
		Message:     msgLoginSuccessful,
		User:        userInfo,
		IDToken:     tokens.IDToken,
		AccessToken: tokens.AccessToken,
	})
}

var _ IdentityExchanger = (*identity.Client)(nil)
