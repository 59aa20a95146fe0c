package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
	"github.com/o1-spec/techservices-portal/internal/transport"
)

// publicPaths are reachable without any credential. Prefix matched, same as
// the protected-page table.
var publicPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/forgot-password",
	"/auth/reset-password",
	"/auth/verify-email",
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh",
	"/api/auth/forgot-password",
	"/api/auth/reset-password",
	"/api/auth/verify-email",
	"/api/auth/resend-verification",
	"/health",
	"/metrics",
	"/swagger",
}

// skipPaths bypass the gate entirely: static assets plus the two bootstrap
// auth endpoints, which must stay reachable by definition.
var skipPaths = []string{
	"/static/",
	"/favicon.ico",
	"/api/auth/login",
	"/api/auth/register",
}

// RouteGate is the stateless edge check that runs before any handler. It
// reads only the access-token cookie and verifies it locally, never touching
// the store; the per-request authenticator behind it remains the security
// boundary. Unknown paths are treated as protected pages, so the gate fails
// closed.
type RouteGate struct {
	verifier auth.TokenGeneratorAPI
	cfg      internal.GateConfig
}

func NewRouteGate(verifier auth.TokenGeneratorAPI, cfg internal.GateConfig) *RouteGate {
	return &RouteGate{verifier: verifier, cfg: cfg}
}

func (g *RouteGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		for _, p := range skipPaths {
			if strings.HasPrefix(path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		claims := g.cookieClaims(r)

		// An authenticated visitor never sees the logged-out experience:
		// auth pages (except email verification) and the root page bounce
		// to the dashboard.
		if claims != nil {
			if path == "/" || (strings.HasPrefix(path, "/auth/") && !strings.Contains(path, "/verify-email")) {
				http.Redirect(w, r, g.cfg.DashboardPath, http.StatusFound)
				return
			}
		}

		if g.isPublic(path) || path == "/" {
			next.ServeHTTP(w, r)
			return
		}

		isAPI := strings.HasPrefix(path, "/api/")

		if claims == nil {
			if isAPI {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Authentication required"}`))
				return
			}
			loginURL := g.cfg.LoginPath + "?redirect=" + url.QueryEscape(path)
			http.Redirect(w, r, loginURL, http.StatusFound)
			return
		}

		if !isAPI && !g.pageAllowed(path, claims) {
			// a role miss on a page is a UX redirect, not an API denial
			target := r.Header.Get("Referer")
			if target == "" {
				target = g.cfg.DashboardPath
			}
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// cookieClaims returns the decoded claims when the access cookie is present
// and verifies, nil otherwise. Invalid and absent are deliberately the same.
func (g *RouteGate) cookieClaims(r *http.Request) *auth.Claims {
	cookie, err := r.Cookie(transport.AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := g.verifier.VerifyAccessToken(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

func (g *RouteGate) isPublic(path string) bool {
	for _, p := range publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (g *RouteGate) pageAllowed(path string, claims *auth.Claims) bool {
	if strings.HasPrefix(path, "/reports") {
		for _, email := range g.cfg.ReportAllowedEmails {
			if strings.EqualFold(email, claims.Email) {
				return true
			}
		}
		return false
	}

	for prefix, roles := range g.cfg.PageRoles {
		if strings.HasPrefix(path, prefix) {
			for _, role := range roles {
				if role == claims.Role {
					return true
				}
			}
			return false
		}
	}

	// pages without an entry only require authentication
	return true
}
