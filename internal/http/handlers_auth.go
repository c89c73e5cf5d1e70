package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/brightmath/campus-api/internal/domain/auth"
	"github.com/brightmath/campus-api/internal/handshake"
	"github.com/brightmath/campus-api/internal/ports"
	"github.com/brightmath/campus-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, provider, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (domainauth.Session, error)
	Status(ctx context.Context) (*domainauth.Session, error)
	Logout(ctx context.Context) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc      AuthServiceInterface
	Sessions ports.SessionStore

	// BaseURL is the app's external base URL, used to build the callback
	// redirect and, by default, the popup's postMessage target origin.
	BaseURL string
	// AllowedOrigins are the origins the relay page may post to. The first
	// entry is the target; empty falls back to the BaseURL origin.
	AllowedOrigins []string
	CookieDomain   string
	// CloseDelay is how long the relay page waits before closing itself.
	CloseDelay time.Duration
	Logger     *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *AuthHandlers) targetOrigin() string {
	if len(h.AllowedOrigins) > 0 {
		return h.AllowedOrigins[0]
	}
	return strings.TrimRight(h.BaseURL, "/")
}

func (h *AuthHandlers) closeDelay() time.Duration {
	if h.CloseDelay > 0 {
		return h.CloseDelay
	}
	return 300 * time.Millisecond
}

// Login handles the login initiation endpoint.
// GET /auth/google/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirectURL := strings.TrimRight(h.BaseURL, "/") + "/auth/google/callback"

	result, err := h.Svc.BeginLogin(r.Context(), "google", redirectURL)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     err,
		})
		return
	}

	// Bind this browser to the flow it started: state is echoed by the
	// provider, nonce ends up inside the ID token.
	h.setOAuthCookies(w, r, oauthCookieParams{State: result.State, Nonce: result.Nonce})

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// exchangerFunc adapts a closure to the handshake exchanger contract.
type exchangerFunc func(ctx context.Context, provider, code string) (domainauth.Session, error)

func (f exchangerFunc) ExchangeSocialLogin(ctx context.Context, provider, code string) (domainauth.Session, error) {
	return f(ctx, provider, code)
}

// relayPort captures the success envelope so the relay page can deliver it
// client side with window.opener.postMessage.
type relayPort struct {
	msg    handshake.Message
	target string
}

func (p *relayPort) Post(msg handshake.Message, targetOrigin string) error {
	p.msg = msg
	p.target = targetOrigin
	return nil
}

// Callback handles the OAuth callback endpoint inside the popup.
// GET /auth/google/callback?code=<code>&state=<state>.
//
// The handshake completer runs the exchange and persists the session before
// the relay page is rendered, so the opener can read a valid session the
// moment the posted message arrives.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// State binds the callback to the initiating browser; enforced before
	// anything is exchanged. Error redirects carry no code and are passed
	// through to the completer for a user-readable failure panel.
	if query.Get("code") != "" {
		stateCookie, err := r.Cookie("oauth_state")
		if err != nil || stateCookie.Value == "" || stateCookie.Value != query.Get("state") {
			h.renderFailure(w, r, handshake.Outcome{
				State:  handshake.StateFailed,
				Reason: "invalid_state",
				Err:    errors.New("state parameter does not match this browser"),
			})
			return
		}
	}

	var nonce string
	if nonceCookie, err := r.Cookie("oauth_nonce"); err == nil {
		nonce = nonceCookie.Value
	}

	relay := &relayPort{}
	completer, err := handshake.NewCompleter(handshake.CompleterOptions{
		Exchanger: exchangerFunc(func(ctx context.Context, provider, code string) (domainauth.Session, error) {
			return h.Svc.CompleteLogin(ctx, service.CompleteLoginInput{
				Provider: provider,
				Code:     code,
				Nonce:    nonce,
			})
		}),
		Sessions:     h.Sessions,
		Opener:       relay,
		TargetOrigin: h.targetOrigin(),
	})
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "handshake_setup_failed", Err: err})
		return
	}
	defer completer.Stop()

	out := completer.Complete(r.Context(), query)

	h.clearCookie(w, r, "oauth_state")
	h.clearCookie(w, r, "oauth_nonce")

	if out.State != handshake.StateSucceeded {
		h.renderFailure(w, r, out)
		return
	}

	h.renderRelay(w, r, relay)
}

// SocialLogin exchanges an authorization code for a session over JSON.
// POST /auth/social-login {"provider": "google", "code": "..."}.
func (h *AuthHandlers) SocialLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
		Code     string `json:"code"`
		Nonce    string `json:"nonce"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Provider == "" {
		req.Provider = "google"
	}

	sess, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Provider: req.Provider,
		Code:     req.Code,
		Nonce:    req.Nonce,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "social login failed", "provider", req.Provider, "error", err)
		WriteJSON(w, http.StatusUnauthorized, map[string]any{
			"ok":      false,
			"message": "login failed",
		})
		return
	}

	if err := h.Sessions.Set(r.Context(), sess); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_persist_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"token": sess.Token,
		"user":  sess.User,
	})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Svc.Status(r.Context())
	if err != nil || sess == nil {
		if err != nil {
			h.logger().WarnContext(r.Context(), "status read failed", "error", err)
		}
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"token":         sess.Token,
		"user":          sess.User,
	})
}

// Logout clears the stored session.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "logout_failed", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// oauthCookieParams groups values needed to set OAuth cookies.
type oauthCookieParams struct {
	State string
	Nonce string
}

// setOAuthCookies stores the OAuth state and nonce in secure cookies.
func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, p oauthCookieParams) {
	isSecure := requestIsSecure(r)
	const oauthCookieTTL = 10 * time.Minute

	for name, value := range map[string]string{
		"oauth_state": p.State,
		"oauth_nonce": p.Nonce,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			HttpOnly: true,
			Secure:   isSecure,
			MaxAge:   int(oauthCookieTTL.Seconds()),
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// clearCookie clears a cookie by setting it to expire immediately.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
