package auth

import (
	"net/http"

	"github.com/o1-spec/techservices-portal/internal/transport"
)

// Middleware factories gating routes against the Policy table. They assume
// RequireAuth already ran and placed an Identity on the context; a missing
// identity is treated as a denial, not a server error.

func RequirePermission(base *transport.BaseHandler, policy *Policy, resource Resource, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok || identity == nil {
				base.WriteError(w, http.StatusUnauthorized, "Access token is required")
				return
			}

			if err := policy.Authorize(identity, resource, action); err != nil {
				base.HandleServiceError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole allows only the listed roles. Used where a route is gated on
// role membership directly rather than a resource/action pair.
func RequireRole(base *transport.BaseHandler, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok || identity == nil {
				base.WriteError(w, http.StatusUnauthorized, "Access token is required")
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			base.WriteError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}
