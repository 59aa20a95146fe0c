package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/transport"
	"github.com/o1-spec/techservices-portal/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service          ServiceAPI
	TokenVerifier    TokenGeneratorAPI
	SecureCookies    bool
	AccessCookieTTL  time.Duration
	RefreshCookieTTL time.Duration
}

func NewHandler(svc ServiceAPI, verifier TokenGeneratorAPI, secureCookies bool, accessTTL, refreshTTL time.Duration) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler:      transport.NewBaseHandler(lg),
		Service:          svc,
		TokenVerifier:    verifier,
		SecureCookies:    secureCookies,
		AccessCookieTTL:  accessTTL,
		RefreshCookieTTL: refreshTTL,
	}
}

func (h *Handler) setAuthCookies(w http.ResponseWriter, tokens AuthTokens) {
	// the access cookie is readable by client script so the UI can mirror it
	// into the bearer header; the refresh cookie never is
	http.SetCookie(w, &http.Cookie{
		Name:     transport.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		MaxAge:   int(h.AccessCookieTTL.Seconds()),
		HttpOnly: false,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     transport.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.RefreshCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{transport.AccessTokenCookie, transport.RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == transport.RefreshTokenCookie,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Authenticate(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setAuthCookies(w, result.Tokens)

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    result.User.ToView(),
		"token":   result.Tokens.AccessToken,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.Register(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully. Please log in.",
		"user":    user.ToView(),
	})
}

// RefreshToken mints a new token pair from the refresh cookie, with a JSON
// body fallback for non-browser clients.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie(transport.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var dto RefreshTokenDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err == nil {
			refreshToken = dto.RefreshToken
		}
	}
	if refreshToken == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	tokens, err := h.Service.RefreshTokens(refreshToken)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setAuthCookies(w, tokens)
	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookies(w)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok || identity == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.Service.CurrentUser(identity.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"company_id":      user.CompanyID,
			"isEmailVerified": user.EmailVerified,
			"createdAt":       user.CreatedAt,
			"updatedAt":       user.UpdatedAt,
		},
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var dto ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.ForgotPassword(r.Context(), dto.Email); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// identical response whether or not the account exists
	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent.",
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.ResetPassword(dto.Token, dto.Password); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset. Please log in."})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var dto VerifyEmailDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.VerifyEmail(dto.Token); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var dto ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.ResendVerification(r.Context(), dto.Email); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent"})
}

// RequireAuth is the authoritative per-request authenticator. The edge gate
// only inspects the token; this middleware re-validates against the live
// principal record, so a signature-valid token for a deactivated account is
// still rejected here.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Logger.Error("panic in authenticator", "panic", rec)
				h.WriteError(w, http.StatusUnauthorized, "Authentication failed")
			}
		}()

		token := h.ExtractToken(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "Access token is required")
			return
		}

		claims, err := h.TokenVerifier.VerifyAccessToken(token)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			h.Logger.Warn("malformed user id in token claims", "value", claims.UserID)
			h.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		identity, err := h.Service.LoadIdentity(userID)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "User not found or inactive")
			return
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		ctx = internal.ContextWithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
