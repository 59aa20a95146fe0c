package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/o1-spec/techservices-portal/internal"
)

// JWTTokenGenerator signs and verifies every token class. Access and refresh
// tokens use distinct secrets so a leaked access key cannot forge refresh
// tokens; single-purpose tokens share the access key but carry a purpose tag
// that is checked on verification.
type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(payload TokenPayload) (string, error) {
	return j.sign(payload, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(payload TokenPayload) (string, error) {
	return j.sign(payload, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) sign(payload TokenPayload, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: payload.UserID,
		Email:  payload.Email,
		Role:   payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   payload.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) GeneratePurposeToken(email string, purpose TokenPurpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &PurposeClaims{
		Email:   email,
		Purpose: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.AccessTokenSecret)
}

// VerifyAccessToken validates a token against the access key class only.
func (j *JWTTokenGenerator) VerifyAccessToken(tokenString string) (*Claims, error) {
	return j.verify(tokenString, j.AccessTokenSecret)
}

// VerifyRefreshToken validates a token against the refresh key class only.
// An access-signed token fails here on signature mismatch.
func (j *JWTTokenGenerator) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return j.verify(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}

// VerifyPurposeToken validates a single-purpose token and enforces the
// purpose tag. A signature-valid token for a different purpose is rejected.
func (j *JWTTokenGenerator) VerifyPurposeToken(tokenString string, purpose TokenPurpose) (*PurposeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PurposeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*PurposeClaims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	if claims.Purpose != string(purpose) {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
