package task

import (
	"strings"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/core/common/validation"
)

type CreateTaskDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   int64  `json:"project_id"`
	AssignedTo  int64  `json:"assignedTo"`
}

func (d *CreateTaskDTO) Validate() *internal.AppError {
	d.Title = strings.TrimSpace(d.Title)

	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("project_id", d.ProjectID).Required()
	v.Field("assignedTo", d.AssignedTo).Required()
	return v.Validate()
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateStatusDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required().OneOf([]string{StatusPending, StatusInProgress, StatusCompleted}, internal.ErrCodeInvalidStatus)
	return v.Validate()
}
