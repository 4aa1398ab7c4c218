package http

import (
	"net/http"

	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/aussiebroadwan/rbac/pkg/httpx"
	"github.com/aussiebroadwan/rbac/pkg/rbacsdk"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /login
//
//	@Summary		Log in
//	@Description	Verifies a username and password and returns a short-lived access token whose subject is the username.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rbacsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	rbacsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	rbacsdk.ErrorResponse	"Missing username or password"
//	@Failure		401		{object}	rbacsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	rbacsdk.ErrorResponse	"Too many attempts"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rbacsdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tok, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rbacsdk.TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   tok.ExpiresIn,
	})
}
