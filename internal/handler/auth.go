package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ideadrop/api/internal/domain"
	"github.com/ideadrop/api/internal/service"
)

const refreshCookieName = "refresh_token"

// refreshCookiePath scopes the refresh cookie to the auth endpoints so it
// is not sent along with every idea request.
const refreshCookiePath = "/api/auth"

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"name":"...","email":"...","password":"..."}
// Response: 201 {"accessToken":"...","user":{...}} + refresh cookie
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeDomainError(w, "register user", err)
		return
	}

	h.respondWithTokens(w, user, http.StatusCreated)
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: 200 {"accessToken":"...","user":{...}} + refresh cookie
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	h.respondWithTokens(w, user, http.StatusOK)
}

// HandleLogout clears the refresh cookie. No token verification is
// performed; logging out an already-logged-out client still succeeds.
// POST /api/auth/logout
// Response: 200 {"message":"..."}
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully."})
}

// HandleRefresh mints a new access token from the refresh cookie. The
// refresh token itself is not rotated.
// POST /api/auth/refresh
// Response: 200 {"accessToken":"...","user":{...}} or 401
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No refresh token.")
		return
	}

	userID, err := h.auth.VerifyRefreshToken(cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token.")
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid refresh token.")
			return
		}
		slog.Error("get user for refresh", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	accessToken, err := h.auth.IssueAccessToken(user)
	if err != nil {
		slog.Error("issue access token", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": accessToken,
		"user":        toUserDTO(user),
	})
}

// respondWithTokens issues the access+refresh pair, sets the refresh
// cookie, and writes the auth response body. The refresh token never
// appears in a JSON body.
func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, user *domain.User, status int) {
	accessToken, err := h.auth.IssueAccessToken(user)
	if err != nil {
		slog.Error("issue access token", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	refreshToken, err := h.auth.IssueRefreshToken(user)
	if err != nil {
		slog.Error("issue refresh token", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(service.RefreshTokenTTL.Seconds()),
	})

	writeJSON(w, status, map[string]any{
		"accessToken": accessToken,
		"user":        toUserDTO(user),
	})
}
