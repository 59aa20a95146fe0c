package project

import (
	"log/slog"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
)

// MemberDirectory checks that a prospective team member exists in the
// actor's company before they are attached to a project.
type MemberDirectory interface {
	Exists(userID, companyID int64) (bool, error)
}

type Service struct {
	repo    Repository
	members MemberDirectory
	policy  *auth.Policy
	logger  *slog.Logger
}

func NewService(repo Repository, members MemberDirectory, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		members: members,
		policy:  policy,
		logger:  logger,
	}
}

// List returns the projects visible to the actor: the whole company for an
// Admin, assigned projects for a Manager, tasked projects for an Employee.
func (s *Service) List(actor *auth.Identity) ([]*Summary, error) {
	var (
		projects []*Project
		err      error
	)

	switch s.policy.ProjectScopeFor(actor) {
	case auth.ScopeCompany:
		projects, err = s.repo.ListByCompany(actor.CompanyID)
	case auth.ScopeAssigned:
		projects, err = s.repo.ListByAssignee(actor.CompanyID, actor.ID)
	default:
		projects, err = s.repo.ListByTaskAssignee(actor.CompanyID, actor.ID)
	}
	if err != nil {
		return nil, internal.NewInternalError("failed to list projects", err)
	}

	summaries := make([]*Summary, 0, len(projects))
	for _, p := range projects {
		size, err := s.repo.TeamSize(p.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to count team", err)
		}
		summaries = append(summaries, s.summarize(p, size))
	}
	return summaries, nil
}

// Get returns the detail view. Out-of-company ids are 404 by repository
// construction; in-company projects are visible to the Admin or the
// assigned manager only.
func (s *Service) Get(actor *auth.Identity, id int64) (*Detail, error) {
	p, err := s.repo.GetByID(id, actor.CompanyID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}

	if !s.policy.CanViewProject(actor, p.AssignedTo) {
		return nil, internal.ErrForbidden
	}

	team, err := s.repo.Team(p.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load team", err)
	}
	tasks, err := s.repo.Tasks(p.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load tasks", err)
	}

	return &Detail{
		Summary: *s.summarize(p, len(team)),
		Team:    team,
		Tasks:   tasks,
	}, nil
}

// Create makes the actor the project's assignee.
func (s *Service) Create(actor *auth.Identity, dto CreateProjectDTO) (*Project, error) {
	if err := s.policy.Authorize(actor, auth.ResourceProjects, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Project{
		Name:        dto.Name,
		Description: dto.Description,
		Status:      StatusActive,
		AssignedTo:  actor.ID,
		CompanyID:   actor.CompanyID,
	}

	if err := s.repo.Create(p); err != nil {
		return nil, internal.NewInternalError("failed to create project", err)
	}

	s.logger.Info("project created", "project_id", p.ID, "company_id", p.CompanyID, "by", actor.ID)
	return p, nil
}

func (s *Service) Update(actor *auth.Identity, id int64, dto UpdateProjectDTO) error {
	if err := s.policy.Authorize(actor, auth.ResourceProjects, auth.ActionUpdate); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id, actor.CompanyID); err != nil {
		return internal.ErrProjectNotFound
	}

	if err := s.repo.Update(id, actor.CompanyID, dto.Name, dto.Description, dto.Status); err != nil {
		return internal.NewInternalError("failed to update project", err)
	}
	return nil
}

func (s *Service) Delete(actor *auth.Identity, id int64) error {
	if err := s.policy.Authorize(actor, auth.ResourceProjects, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id, actor.CompanyID); err != nil {
		return internal.ErrProjectNotFound
	}

	if err := s.repo.Delete(id, actor.CompanyID); err != nil {
		return internal.NewInternalError("failed to delete project", err)
	}

	s.logger.Info("project deleted", "project_id", id, "by", actor.ID)
	return nil
}

// AddMember attaches a company principal to the project team.
func (s *Service) AddMember(actor *auth.Identity, projectID int64, dto AddMemberDTO) error {
	if err := s.policy.Authorize(actor, auth.ResourceProjectTeam, auth.ActionCreate); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(projectID, actor.CompanyID); err != nil {
		return internal.ErrProjectNotFound
	}

	exists, err := s.members.Exists(dto.UserID, actor.CompanyID)
	if err != nil {
		return internal.NewInternalError("failed to look up member", err)
	}
	if !exists {
		return internal.ErrEmployeeNotFound
	}

	if err := s.repo.AddMember(projectID, dto.UserID, dto.Role); err != nil {
		return internal.NewInternalError("failed to add team member", err)
	}
	return nil
}

func (s *Service) summarize(p *Project, teamSize int) *Summary {
	return &Summary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Deadline:    p.DeadlineLabel(),
		Team:        teamSize,
		Progress:    0,
	}
}
