package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// TokenPurpose tags single-purpose tokens. A token minted for one purpose
// must never be accepted by a handler expecting another.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email-verification"
	PurposePasswordReset     TokenPurpose = "password-reset"
)

const (
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = time.Hour
)

// User is the principal record as the auth layer sees it. PasswordHash is
// only populated by the credential lookup path and never serialized.
type User struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	CompanyID     int64      `json:"company_id"`
	Phone         string     `json:"phone,omitempty"`
	Department    string     `json:"department,omitempty"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"isEmailVerified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PasswordHash  string     `json:"-"`
}

// Identity is the request-scoped acting principal attached by RequireAuth.
type Identity struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	CompanyID int64
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i *Identity) IsManager() bool {
	return i.Role == RoleManager
}

func (i *Identity) IsAdminOrManager() bool {
	return i.Role == RoleAdmin || i.Role == RoleManager
}

type TokenPayload struct {
	UserID string
	Email  string
	Role   string
}

// Claims carried by access and refresh tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// PurposeClaims carried by email-verification and password-reset tokens.
type PurposeClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(payload TokenPayload) (string, error)
	GenerateRefreshToken(payload TokenPayload) (string, error)
	GeneratePurposeToken(email string, purpose TokenPurpose, ttl time.Duration) (string, error)
	VerifyAccessToken(tokenString string) (*Claims, error)
	VerifyRefreshToken(tokenString string) (*Claims, error)
	VerifyPurposeToken(tokenString string, purpose TokenPurpose) (*PurposeClaims, error)
}

type RepositoryAPI interface {
	GetByEmailWithPassword(email string) (*User, error)
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Create(user *User, passwordHash string) error
	UpdateLastLogin(userID int64, at time.Time) error
	UpdatePassword(email string, passwordHash string) error
	MarkEmailVerified(email string) error
}

// Mailer is the outbound email boundary. Delivery itself is an external
// collaborator; the service only depends on this contract.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	Register(dto RegisterDTO) (*User, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	LoadIdentity(userID int64) (*Identity, error)
	CurrentUser(userID int64) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(token, newPassword string) error
	VerifyEmail(token string) error
	ResendVerification(ctx context.Context, email string) error
}

type LoginResult struct {
	User   *User
	Tokens AuthTokens
}

type ctxKey string

const ContextUserKey ctxKey = "identity"

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ContextUserKey).(*Identity)
	return id, ok
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ContextUserKey, id)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
