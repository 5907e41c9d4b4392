package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/session"
)

const invalidCredentialsMessage = "Invalid credentials. Please try again."

// Authenticator is implemented by session.Guard.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*session.Tokens, session.Event, error)
	SignOut(ctx context.Context, accessToken string, who *session.Identity) session.Event
	ConfigError() error
}

type AuthHandler struct {
	auth          Authenticator
	limiter       *RateLimiter
	secureCookies bool
	logger        *zap.Logger
}

func NewAuthHandler(auth Authenticator, limiter *RateLimiter, secureCookies bool, logger *zap.Logger) *AuthHandler {
	if limiter == nil {
		limiter = NewRateLimiter(10, time.Minute)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, limiter: limiter, secureCookies: secureCookies, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.ConfigError(); err != nil {
		render(w, http.StatusServiceUnavailable, "login.html", loginPage{ConfigError: err.Error()})
		return
	}
	if sess := session.FromContext(r.Context()); sess.Phase() == session.PhaseAuthenticated {
		http.Redirect(w, r, session.HomePath, http.StatusSeeOther)
		return
	}
	render(w, http.StatusOK, "login.html", loginPage{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(clientIP(r)) {
		h.loginFailed(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.", "")
		return
	}

	var req LoginRequest
	if wantsJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.loginFailed(w, r, http.StatusBadRequest, "Invalid JSON", "")
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	tokens, ev, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		var cfgErr *session.ConfigError
		if errors.As(err, &cfgErr) {
			h.loginFailed(w, r, http.StatusServiceUnavailable, cfgErr.Error(), req.Email)
			return
		}
		h.loginFailed(w, r, http.StatusUnauthorized, invalidCredentialsMessage, req.Email)
		return
	}

	h.setTokenCookies(w, tokens)

	sess := session.FromContext(r.Context())
	sess.Apply(ev)
	to, _ := sess.RedirectFor(r.URL.Path)
	if to == "" {
		to = session.HomePath
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, LoginResponse{Success: true, Redirect: to})
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(session.AccessTokenCookie); err == nil {
		token = c.Value
	}

	sess := session.FromContext(r.Context())
	ev := h.auth.SignOut(r.Context(), token, sess.Identity())
	h.clearTokenCookies(w)
	sess.Apply(ev)

	to, _ := sess.RedirectFor(r.URL.Path)
	if to == "" {
		to = session.LoginPath
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, LoginResponse{Success: true, Redirect: to})
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, status int, message, email string) {
	if wantsJSON(r) {
		writeJSON(w, status, LoginResponse{Message: message})
		return
	}
	page := loginPage{Email: email, Error: message}
	if status == http.StatusServiceUnavailable {
		page = loginPage{ConfigError: message}
	}
	render(w, status, "login.html", page)
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, t *session.Tokens) {
	maxAge := t.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}
	http.SetCookie(w, h.cookie(session.AccessTokenCookie, t.AccessToken, maxAge))
	if t.RefreshToken != "" {
		http.SetCookie(w, h.cookie(session.RefreshTokenCookie, t.RefreshToken, 30*24*3600))
	}
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(session.AccessTokenCookie, "", -1))
	http.SetCookie(w, h.cookie(session.RefreshTokenCookie, "", -1))
}

func (h *AuthHandler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
