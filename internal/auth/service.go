package auth

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/o1-spec/techservices-portal/internal"
)

// CompanyDirectory resolves a company name to an id, creating the company on
// first sight. Registration against an unseen company name provisions it.
type CompanyDirectory interface {
	FindOrCreate(name string) (int64, error)
}

type Service struct {
	repo           RepositoryAPI
	companies      CompanyDirectory
	tokenGenerator TokenGeneratorAPI
	mailer         Mailer
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, companies CompanyDirectory, tokenGen TokenGeneratorAPI, mailer Mailer, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		companies:      companies,
		tokenGenerator: tokenGen,
		mailer:         mailer,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns the principal plus a fresh
// token pair. Unknown email, wrong password and deactivated account all
// surface as the same credential error.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmailWithPassword(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(user.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(user.ID, now); err != nil {
		// non-fatal: login proceeds even if the timestamp write fails
		s.logger.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}
	user.LastLogin = &now

	tokens, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user authenticated", "user_id", user.ID, "role", user.Role)

	return &LoginResult{User: user, Tokens: tokens}, nil
}

func (s *Service) issueTokenPair(user *User) (AuthTokens, error) {
	payload := TokenPayload{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
		Role:   string(user.Role),
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(payload)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate access token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(payload)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to generate refresh token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates a principal, provisioning the company when its name is
// unseen. The company reference is fixed at creation and never updated.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	}

	companyID, err := s.companies.FindOrCreate(dto.CompanyName)
	if err != nil {
		return nil, internal.NewInternalError("failed to resolve company", err)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Name:       dto.Name,
		Email:      dto.Email,
		Role:       Role(dto.Role),
		CompanyID:  companyID,
		Phone:      dto.Phone,
		Department: dto.Department,
		IsActive:   true,
		// verification is currently waived at signup; the verify endpoints
		// still operate on issued tokens
		EmailVerified: true,
	}

	if err := s.repo.Create(user, hash); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "company_id", companyID, "role", user.Role)

	return user, nil
}

// RefreshTokens validates a refresh-class token and mints a new pair. The
// principal is re-loaded so a deactivated account cannot renew its session.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.VerifyRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	user, err := s.repo.GetByID(userID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	if !user.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokenPair(user)
}

// LoadIdentity resolves a verified token's subject to a live principal.
// Missing or deactivated principals are credential failures: the token may
// be signature-valid but the account state wins.
func (s *Service) LoadIdentity(userID int64) (*Identity, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	return &Identity{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}

func (s *Service) CurrentUser(userID int64) (*User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return user, nil
}

// ForgotPassword issues a reset token when the account exists. The outcome
// is identical either way so the endpoint cannot be used to enumerate
// accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(email)
	if err != nil || user == nil {
		s.logger.Info("password reset requested for unknown email")
		return nil
	}

	token, err := s.tokenGenerator.GeneratePurposeToken(user.Email, PurposePasswordReset, PasswordResetTTL)
	if err != nil {
		return internal.NewInternalError("failed to generate reset token", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		s.logger.Error("failed to send password reset email", "error", err)
		return internal.NewInternalError("failed to send reset email", err)
	}

	return nil
}

func (s *Service) ResetPassword(token, newPassword string) error {
	claims, err := s.tokenGenerator.VerifyPurposeToken(token, PurposePasswordReset)
	if err != nil {
		return internal.ErrInvalidToken
	}

	hash, err := HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(claims.Email, hash); err != nil {
		return internal.NewInternalError("failed to update password", err)
	}

	s.logger.Info("password reset completed")
	return nil
}

func (s *Service) VerifyEmail(token string) error {
	claims, err := s.tokenGenerator.VerifyPurposeToken(token, PurposeEmailVerification)
	if err != nil {
		return internal.ErrInvalidToken
	}

	if err := s.repo.MarkEmailVerified(claims.Email); err != nil {
		return internal.NewInternalError("failed to mark email verified", err)
	}

	return nil
}

func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(email)
	if err != nil || user == nil {
		return nil
	}
	if user.EmailVerified {
		return nil
	}

	token, err := s.tokenGenerator.GeneratePurposeToken(user.Email, PurposeEmailVerification, EmailVerificationTTL)
	if err != nil {
		return internal.NewInternalError("failed to generate verification token", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
		return internal.NewInternalError("failed to send verification email", err)
	}

	return nil
}

// LogMailer is the default Mailer: it records the intent without delivering
// anything. Real delivery is wired in deployments that have an email
// provider configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendVerificationEmail(_ context.Context, email, _ string) error {
	m.Logger.Info("verification email queued", "email", email)
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(_ context.Context, email, _ string) error {
	m.Logger.Info("password reset email queued", "email", email)
	return nil
}
