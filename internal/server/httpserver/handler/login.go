package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/atelierlabs/atelier-go/internal/core/domain"
	"github.com/atelierlabs/atelier-go/internal/core/service"
)

// loginPageData feeds the login page template.
type loginPageData struct {
	AppName      string
	WelcomeText  string
	PasswordNote string
	Error        string
	To           string
}

// handleLoginPage handles GET /login.
func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if !h.auth.RequiresAuth() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	// An already authenticated browser skips the form.
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		_, err := h.auth.ValidateToken(r.Context(), &service.ValidateTokenRequest{
			Token:     cookie.Value,
			IPAddress: getClientIP(r),
			UserAgent: r.UserAgent(),
		})
		if err == nil {
			http.Redirect(w, r, redirectTarget(r), http.StatusFound)
			return
		}
	}

	h.renderLogin(w, r, http.StatusOK, "")
}

// handleLogin handles POST /login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.auth.RequiresAuth() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	resp, err := h.auth.Login(r.Context(), &service.LoginRequest{
		Password:  r.PostFormValue("password"),
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordAuthFailure(authFailureReason(err))
		}
		status := errorCodeToHTTPStatus(domain.GetErrorCode(err))
		h.renderLogin(w, r, status, loginErrorMessage(err))
		return
	}

	if h.metrics != nil {
		h.metrics.IncLogin()
		h.metrics.IncSessionCreated()
	}

	http.SetCookie(w, h.sessionCookie(resp.Token, time.UnixMilli(resp.ExpiresAt)))
	http.Redirect(w, r, redirectTarget(r), http.StatusFound)
}

// handleLogout handles POST /logout. Logging out an already logged-out
// browser succeeds.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("logout failed", "error", err)
		} else if h.metrics != nil {
			h.metrics.IncSessionRevoked()
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// renderLogin writes the login page with an optional error banner.
func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	data := loginPageData{
		AppName:      h.appName,
		WelcomeText:  h.welcomeText,
		PasswordNote: h.passwordNote,
		Error:        errMsg,
		To:           redirectTarget(r),
	}
	if err := pageTemplates.ExecuteTemplate(w, "login.html", data); err != nil {
		h.logger.Error("failed to render login page", "error", err)
	}
}

// sessionCookie builds the session cookie. Expiry mirrors the session
// TTL so browser and server expire together.
func (h *Handler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// redirectTarget returns the post-login destination. Only local paths
// are honored so the login form cannot be used as an open redirect.
func redirectTarget(r *http.Request) string {
	to := r.FormValue("to")
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return "/"
	}
	return to
}

// loginErrorMessage translates service errors into the short messages
// shown on the form.
func loginErrorMessage(err error) string {
	switch {
	case domain.IsDomainError(err, "AT-AUTH-4290"):
		return "Too many login attempts; try again later"
	case domain.IsDomainError(err, "AT-AUTH-4010"):
		return "Incorrect password"
	case domain.IsDomainError(err, "AT-SYS-4000"):
		return "Missing password"
	default:
		return "Login failed"
	}
}

// authFailureReason labels a failed login for the metrics registry.
func authFailureReason(err error) string {
	if domain.IsDomainError(err, "AT-AUTH-4290") {
		return "rate_limited"
	}
	return "bad_password"
}
