package auth

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/o1-spec/techservices-portal/internal"
)

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var (
		tokenGen   *JWTTokenGenerator
		accessTTL  time.Duration = 15 * time.Minute
		refreshTTL time.Duration = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("test-access-secret-key", "test-refresh-secret-key", accessTTL, refreshTTL)
	})

	ginkgo.Describe("access tokens", func() {
		ginkgo.It("should round-trip the payload", func() {
			// Given
			payload := TokenPayload{UserID: "123", Email: "test@example.com", Role: "Admin"}

			// When
			token, err := tokenGen.GenerateAccessToken(payload)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.VerifyAccessToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("123"))
			gomega.Expect(claims.Email).To(gomega.Equal("test@example.com"))
			gomega.Expect(claims.Role).To(gomega.Equal("Admin"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(accessTTL), time.Minute))
		})

		ginkgo.It("should reject a malformed token", func() {
			// When
			claims, err := tokenGen.VerifyAccessToken("invalid.token.here")

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should reject an empty token", func() {
			// When
			claims, err := tokenGen.VerifyAccessToken("")

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should report expiry distinctly", func() {
			// Given a generator that mints already-expired tokens
			expiredGen := NewJWTTokenGenerator("test-access-secret-key", "test-refresh-secret-key", -time.Hour, -time.Hour)
			token, err := expiredGen.GenerateAccessToken(TokenPayload{UserID: "1", Email: "expired@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims, err := tokenGen.VerifyAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
			gomega.Expect(claims).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("refresh tokens", func() {
		ginkgo.It("should round-trip the payload", func() {
			// Given
			payload := TokenPayload{UserID: "456", Email: "refresh@example.com", Role: "Employee"}

			// When
			token, err := tokenGen.GenerateRefreshToken(payload)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.VerifyRefreshToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("456"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(refreshTTL), time.Minute))
		})
	})

	ginkgo.Describe("key class separation", func() {
		ginkgo.It("should not accept an access token on the refresh path", func() {
			// Given
			token, err := tokenGen.GenerateAccessToken(TokenPayload{UserID: "1", Email: "a@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims, err := tokenGen.VerifyRefreshToken(token)

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should not accept a refresh token on the access path", func() {
			// Given
			token, err := tokenGen.GenerateRefreshToken(TokenPayload{UserID: "1", Email: "a@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims, err := tokenGen.VerifyAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should reject tokens signed by another key", func() {
			// Given
			otherGen := NewJWTTokenGenerator("different-secret", "different-refresh", accessTTL, refreshTTL)
			token, err := otherGen.GenerateAccessToken(TokenPayload{UserID: "1", Email: "a@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims, err := tokenGen.VerifyAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
			gomega.Expect(claims).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("purpose tokens", func() {
		ginkgo.It("should round-trip email and purpose", func() {
			// When
			token, err := tokenGen.GeneratePurposeToken("verify@example.com", PurposeEmailVerification, EmailVerificationTTL)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := tokenGen.VerifyPurposeToken(token, PurposeEmailVerification)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Email).To(gomega.Equal("verify@example.com"))
			gomega.Expect(claims.Purpose).To(gomega.Equal(string(PurposeEmailVerification)))
		})

		ginkgo.It("should reject a signature-valid token with the wrong purpose", func() {
			// Given
			token, err := tokenGen.GeneratePurposeToken("verify@example.com", PurposeEmailVerification, EmailVerificationTTL)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims, err := tokenGen.VerifyPurposeToken(token, PurposePasswordReset)

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
			gomega.Expect(claims).To(gomega.BeNil())
		})

		ginkgo.It("should report expiry for an expired purpose token", func() {
			// Given
			token, err := tokenGen.GeneratePurposeToken("verify@example.com", PurposePasswordReset, -time.Hour)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			claims, err := tokenGen.VerifyPurposeToken(token, PurposePasswordReset)

			// Then
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
			gomega.Expect(claims).To(gomega.BeNil())
		})
	})
})
