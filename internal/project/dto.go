package project

import (
	"strings"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/core/common/validation"
)

type CreateProjectDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *CreateProjectDTO) Validate() *internal.AppError {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("description", d.Description).Required()
	return v.Validate()
}

type UpdateProjectDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (d *UpdateProjectDTO) Validate() *internal.AppError {
	d.Name = strings.TrimSpace(d.Name)

	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("description", d.Description).Required()
	v.Field("status", d.Status).Required().OneOf([]string{StatusActive, StatusOnHold, StatusCompleted}, internal.ErrCodeInvalidStatus)
	return v.Validate()
}

type AddMemberDTO struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

func (d *AddMemberDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("userId", d.UserID).Required()
	v.Field("role", d.Role).Required()
	return v.Validate()
}
