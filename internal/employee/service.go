package employee

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
)

type Service struct {
	repo       Repository
	policy     *auth.Policy
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		policy:     policy,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// List returns the company's non-admin staff. Admin only.
func (s *Service) List(actor *auth.Identity) ([]*Employee, error) {
	if err := s.policy.Authorize(actor, auth.ResourceEmployees, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(actor.CompanyID)
}

// Create provisions an employee in the actor's company with a generated
// initial password. The password is only logged as an audit fact, never
// returned; delivery happens out of band.
func (s *Service) Create(actor *auth.Identity, dto CreateEmployeeDTO) (*Employee, error) {
	if err := s.policy.Authorize(actor, auth.ResourceEmployees, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check email", err)
	}
	if taken {
		return nil, internal.ErrEmailTaken
	}

	initialPassword := generatePassword()
	hash, err := auth.HashPassword(initialPassword, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	emp := &Employee{
		Name:       dto.Name,
		Email:      dto.Email,
		Role:       auth.Role(dto.Role),
		Status:     dto.Status,
		Phone:      dto.Phone,
		Department: dto.Department,
	}

	if err := s.repo.Create(emp, actor.CompanyID, hash); err != nil {
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	// TODO: deliver the initial password by email once a real Mailer is wired
	s.logger.Info("employee created", "employee_id", emp.ID, "company_id", actor.CompanyID, "created_by", actor.ID)

	return emp, nil
}

// Update rewrites the employee's profile fields. A company mismatch reads as
// not-found.
func (s *Service) Update(actor *auth.Identity, id int64, dto UpdateEmployeeDTO) error {
	if err := s.policy.Authorize(actor, auth.ResourceEmployees, auth.ActionUpdate); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id, actor.CompanyID); err != nil {
		return internal.ErrEmployeeNotFound
	}

	emp := &Employee{
		Name:       dto.Name,
		Email:      dto.Email,
		Role:       auth.Role(dto.Role),
		Status:     dto.Status,
		Phone:      dto.Phone,
		Department: dto.Department,
	}

	if err := s.repo.Update(id, actor.CompanyID, emp); err != nil {
		return internal.NewInternalError("failed to update employee", err)
	}

	return nil
}

// Deactivate is the soft delete: one atomic flag update, the row stays.
func (s *Service) Deactivate(actor *auth.Identity, id int64) error {
	if err := s.policy.Authorize(actor, auth.ResourceEmployees, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id, actor.CompanyID); err != nil {
		return internal.ErrEmployeeNotFound
	}

	if err := s.repo.Deactivate(id, actor.CompanyID); err != nil {
		return internal.NewInternalError("failed to deactivate employee", err)
	}

	s.logger.Info("employee deactivated", "employee_id", id, "by", actor.ID)
	return nil
}

// MyTeam lists the manager's Employee-role reports with task figures.
func (s *Service) MyTeam(actor *auth.Identity) ([]*TeamMember, error) {
	if err := s.policy.Authorize(actor, auth.ResourceMyTeam, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ListTeamMembers(actor.CompanyID)
}

// MyProfile returns the actor's own account view. Self-scoped, no policy
// gate: every authenticated principal has a profile.
func (s *Service) MyProfile(actor *auth.Identity) (*Profile, error) {
	p, err := s.repo.GetProfile(actor.ID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return p, nil
}

// UpdateMyProfile rewrites the actor's own contact fields and, when a new
// password is supplied, rotates the credential.
func (s *Service) UpdateMyProfile(actor *auth.Identity, dto UpdateProfileDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	upd := ProfileUpdate{
		Name:     dto.Name,
		Email:    dto.Email,
		Phone:    dto.Phone,
		Location: dto.Location,
		Bio:      dto.Bio,
	}
	if dto.Password != "" {
		hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}
		upd.PasswordHash = hash
		s.logger.Info("profile password rotated", "user_id", actor.ID)
	}

	if err := s.repo.UpdateProfile(actor.ID, upd); err != nil {
		return internal.NewInternalError("failed to update profile", err)
	}
	return nil
}

// Users returns the assignment picker: an Admin sees every company
// principal, a Manager only the Employee-role staff.
func (s *Service) Users(actor *auth.Identity) ([]*UserRef, error) {
	if err := s.policy.Authorize(actor, auth.ResourceUsers, auth.ActionRead); err != nil {
		return nil, err
	}

	role := auth.Role("")
	if !actor.IsAdmin() {
		role = auth.RoleEmployee
	}

	users, err := s.repo.ListUserRefs(actor.CompanyID, role)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// generatePassword builds a throwaway initial credential. Employees are
// expected to change it through the reset flow.
func generatePassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
