package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/transport"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler  *Handler
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	cookieByName := func(w *httptest.ResponseRecorder, name string) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == name {
				return c
			}
		}
		return nil
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("handler-access-secret", "handler-refresh-secret", 15*time.Minute, 24*time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := NewService(mockRepo, newMockCompanyDirectory(), tokenGen, &captureMailer{}, bcrypt.MinCost, logger)
		handler = NewHandler(service, tokenGen, false, 15*time.Minute, 24*time.Hour)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should set both auth cookies on success", func() {
			body := `{"email":"admin@example.com","password":"correct_password"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))

			access := cookieByName(w, transport.AccessTokenCookie)
			gomega.Expect(access).ToNot(gomega.BeNil())
			gomega.Expect(access.Value).ToNot(gomega.BeEmpty())
			gomega.Expect(access.HttpOnly).To(gomega.BeFalse())
			gomega.Expect(access.SameSite).To(gomega.Equal(http.SameSiteStrictMode))

			refresh := cookieByName(w, transport.RefreshTokenCookie)
			gomega.Expect(refresh).ToNot(gomega.BeNil())
			gomega.Expect(refresh.Value).ToNot(gomega.BeEmpty())
			gomega.Expect(refresh.HttpOnly).To(gomega.BeTrue())
		})

		ginkgo.It("should return the user view and the access token in the body", func() {
			body := `{"email":"admin@example.com","password":"correct_password"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			var response struct {
				Message string   `json:"message"`
				User    UserView `json:"user"`
				Token   string   `json:"token"`
			}
			gomega.Expect(json.NewDecoder(w.Body).Decode(&response)).To(gomega.Succeed())
			gomega.Expect(response.Message).To(gomega.Equal("Login successful"))
			gomega.Expect(response.User.Email).To(gomega.Equal("admin@example.com"))
			gomega.Expect(response.Token).ToNot(gomega.BeEmpty())
			gomega.Expect(w.Body.String()).ToNot(gomega.ContainSubstring("password_hash"))
		})

		ginkgo.It("should return 401 and no cookies for bad credentials", func() {
			body := `{"email":"admin@example.com","password":"wrong"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Result().Cookies()).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("RefreshToken", func() {
		var refreshToken string

		ginkgo.BeforeEach(func() {
			body := `{"email":"employee@example.com","password":"correct_password"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()
			handler.Login(w, req)

			c := cookieByName(w, transport.RefreshTokenCookie)
			gomega.Expect(c).ToNot(gomega.BeNil())
			refreshToken = c.Value
		})

		ginkgo.It("should rotate cookies from the refresh cookie", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
			req.AddCookie(&http.Cookie{Name: transport.RefreshTokenCookie, Value: refreshToken})
			w := httptest.NewRecorder()

			handler.RefreshToken(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(cookieByName(w, transport.AccessTokenCookie)).ToNot(gomega.BeNil())
			gomega.Expect(cookieByName(w, transport.RefreshTokenCookie)).ToNot(gomega.BeNil())
		})

		ginkgo.It("should fall back to a JSON body for non-browser clients", func() {
			body := `{"refresh_token":"` + refreshToken + `"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.RefreshToken(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should return 401 when no token is supplied at all", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader("{}"))
			w := httptest.NewRecorder()

			handler.RefreshToken(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should expire both cookies", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
			w := httptest.NewRecorder()

			handler.Logout(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			for _, name := range []string{transport.AccessTokenCookie, transport.RefreshTokenCookie} {
				c := cookieByName(w, name)
				gomega.Expect(c).ToNot(gomega.BeNil())
				gomega.Expect(c.Value).To(gomega.BeEmpty())
				gomega.Expect(c.MaxAge).To(gomega.BeNumerically("<", 0))
			}
		})
	})

	ginkgo.Describe("RequireAuth", func() {
		var protected http.Handler

		ginkgo.BeforeEach(func() {
			protected = handler.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identity, ok := IdentityFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(identity.CompanyID).To(gomega.Equal(int64(1)))
				// the plain user id rides along for downstream log enrichment
				gomega.Expect(internal.UserIDFromContext(r.Context())).To(gomega.Equal("2"))
				w.WriteHeader(http.StatusOK)
			}))
		})

		ginkgo.It("should admit a request carrying a valid access cookie", func() {
			token, err := tokenGen.GenerateAccessToken(TokenPayload{UserID: "2", Email: "manager@example.com", Role: "Manager"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			req.AddCookie(&http.Cookie{Name: transport.AccessTokenCookie, Value: token})
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should admit a request carrying a bearer header", func() {
			token, err := tokenGen.GenerateAccessToken(TokenPayload{UserID: "2", Email: "manager@example.com", Role: "Manager"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a request without any token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Access token is required"))
		})

		ginkgo.It("should reject an invalid token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			req.AddCookie(&http.Cookie{Name: transport.AccessTokenCookie, Value: "garbage"})
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Invalid or expired token"))
		})

		ginkgo.It("should reject a signature-valid token for a deactivated account", func() {
			token, err := tokenGen.GenerateAccessToken(TokenPayload{UserID: "4", Email: "inactive@example.com", Role: "Employee"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			req.AddCookie(&http.Cookie{Name: transport.AccessTokenCookie, Value: token})
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("User not found or inactive"))
		})

		ginkgo.It("should reject a token whose subject no longer exists", func() {
			token, err := tokenGen.GenerateAccessToken(TokenPayload{UserID: "999", Email: "ghost@example.com", Role: "Employee"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			req.AddCookie(&http.Cookie{Name: transport.AccessTokenCookie, Value: token})
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("Me", func() {
		ginkgo.It("should return the expanded current user", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			identity := &Identity{ID: 1, Name: "Alice Admin", Email: "admin@example.com", Role: RoleAdmin, CompanyID: 1}
			req = req.WithContext(ContextWithIdentity(req.Context(), identity))
			w := httptest.NewRecorder()

			handler.Me(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring(`"company_id":1`))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("admin@example.com"))
		})

		ginkgo.It("should return 401 without an identity in context", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			w := httptest.NewRecorder()

			handler.Me(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
