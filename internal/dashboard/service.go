package dashboard

import (
	"log/slog"
	"math"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
)

type Service struct {
	repo   Repository
	policy *auth.Policy
	logger *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

// Stats assembles the figures for the caller's role, all scoped to the
// caller's company.
func (s *Service) Stats(actor *auth.Identity) (*Stats, error) {
	if err := s.policy.Authorize(actor, auth.ResourceDashboard, auth.ActionRead); err != nil {
		return nil, err
	}

	switch actor.Role {
	case auth.RoleAdmin:
		return s.adminStats(actor.CompanyID)
	case auth.RoleManager:
		return s.managerStats(actor)
	default:
		return s.employeeStats(actor)
	}
}

func (s *Service) adminStats(companyID int64) (*Stats, error) {
	employees, err := s.repo.CountEmployees(companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count employees", err)
	}
	projects, err := s.repo.CountActiveProjects(companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count projects", err)
	}
	tasks, err := s.repo.CountOpenTasks(companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count tasks", err)
	}
	announcements, err := s.repo.CountAnnouncements(companyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count announcements", err)
	}

	return &Stats{
		Employees:     &employees,
		Projects:      &projects,
		Tasks:         &tasks,
		Announcements: &announcements,
	}, nil
}

func (s *Service) managerStats(actor *auth.Identity) (*Stats, error) {
	team, err := s.repo.CountTeamMembers(actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count team", err)
	}
	projects, err := s.repo.CountProjectsByAssignee(actor.CompanyID, actor.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count projects", err)
	}
	tasks, err := s.repo.CountTeamTasks(actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count tasks", err)
	}
	announcements, err := s.repo.CountAnnouncements(actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count announcements", err)
	}

	return &Stats{
		TeamMembers:   &team,
		Projects:      &projects,
		Tasks:         &tasks,
		Announcements: &announcements,
	}, nil
}

func (s *Service) employeeStats(actor *auth.Identity) (*Stats, error) {
	myTasks, err := s.repo.CountTasksByAssignee(actor.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count tasks", err)
	}
	completed, err := s.repo.CountCompletedTasksByAssignee(actor.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count tasks", err)
	}
	open, err := s.repo.CountOpenTasksByAssignee(actor.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count tasks", err)
	}
	announcements, err := s.repo.CountAnnouncements(actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count announcements", err)
	}

	performance := 0
	if myTasks > 0 {
		performance = int(math.Round(float64(completed) / float64(myTasks) * 100))
	}

	return &Stats{
		MyTasks:       &myTasks,
		Tasks:         &open,
		Performance:   &performance,
		Announcements: &announcements,
	}, nil
}
