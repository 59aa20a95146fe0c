package task

import (
	"log/slog"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/auth"
)

// ProjectDirectory confirms the target project belongs to the actor's
// company before a task is created under it.
type ProjectDirectory interface {
	Exists(projectID, companyID int64) (bool, error)
}

// AssigneeDirectory confirms the assignee is a member of the company.
type AssigneeDirectory interface {
	Exists(userID, companyID int64) (bool, error)
}

type Service struct {
	repo      Repository
	projects  ProjectDirectory
	assignees AssigneeDirectory
	policy    *auth.Policy
	logger    *slog.Logger
}

func NewService(repo Repository, projects ProjectDirectory, assignees AssigneeDirectory, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		projects:  projects,
		assignees: assignees,
		policy:    policy,
		logger:    logger,
	}
}

func (s *Service) Create(actor *auth.Identity, dto CreateTaskDTO) (*Task, error) {
	if err := s.policy.Authorize(actor, auth.ResourceTasks, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.projects.Exists(dto.ProjectID, actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up project", err)
	}
	if !ok {
		return nil, internal.ErrProjectNotFound
	}

	ok, err = s.assignees.Exists(dto.AssignedTo, actor.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up assignee", err)
	}
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}

	t := &Task{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      StatusPending,
		Priority:    "medium",
		AssignedTo:  dto.AssignedTo,
		ProjectID:   dto.ProjectID,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, internal.NewInternalError("failed to create task", err)
	}

	s.logger.Info("task created", "task_id", t.ID, "project_id", t.ProjectID, "assigned_to", t.AssignedTo, "by", actor.ID)
	return t, nil
}

// MyTasks lists the actor's own tasks, newest first.
func (s *Service) MyTasks(actor *auth.Identity) ([]*View, error) {
	views, err := s.repo.ListByAssignee(actor.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list tasks", err)
	}
	for _, v := range views {
		v.Progress = Progress(v.Status)
		v.Assignee = actor.Name
	}
	return views, nil
}

// UpdateStatus moves a task along its lifecycle. Allowed for the assignee
// or an Admin/Manager; the task's project anchors the tenant scope.
func (s *Service) UpdateStatus(actor *auth.Identity, id int64, dto UpdateStatusDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	t, err := s.repo.GetByID(id, actor.CompanyID)
	if err != nil {
		return internal.ErrTaskNotFound
	}

	if !s.policy.CanUpdateTaskStatus(actor, t.AssignedTo) {
		return internal.ErrForbidden
	}

	if err := s.repo.UpdateStatus(id, dto.Status); err != nil {
		return internal.NewInternalError("failed to update task status", err)
	}

	s.logger.Info("task status updated", "task_id", id, "status", dto.Status, "by", actor.ID)
	return nil
}
