package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/roadmaphq/roadmap/internal/ctxkeys"
	"github.com/roadmaphq/roadmap/internal/model"
	"github.com/roadmaphq/roadmap/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type signInRequest struct {
	Token string `json:"token,omitempty"`
}

// SignIn resolves an identity and sets the session cookie. With no
// token an anonymous user is created; with a custom token the
// identified user is loaded or created. Failure is the generic
// setup-failed state: one 401, no retry loop.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	// An already-authenticated session keeps its identity.
	if user := ctxkeys.User(r.Context()); user != nil {
		writeJSON(w, http.StatusOK, toProfileResponse(user))
		return
	}

	var req signInRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.resolveUser(req.Token)
	if err != nil {
		slog.Error("sign-in failed", "error", err)
		writeError(w, http.StatusUnauthorized, "Setup failed. Please refresh and try again.")
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusUnauthorized, "Setup failed. Please refresh and try again.")
		return
	}

	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

func (h *AuthHandler) resolveUser(token string) (*model.User, error) {
	if token != "" {
		return h.authService.SignInWithToken(token)
	}
	return h.authService.SignInAnonymous()
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
