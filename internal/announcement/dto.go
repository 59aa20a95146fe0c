package announcement

import (
	"strings"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/core/common/validation"
)

type CreateAnnouncementDTO struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

func (d *CreateAnnouncementDTO) Validate() *internal.AppError {
	d.Title = strings.TrimSpace(d.Title)
	if d.Type == "" {
		d.Type = TypeGeneral
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}

	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("content", d.Content).Required()
	v.Field("type", d.Type).OneOf([]string{TypeGeneral, TypeUrgent, TypeEvent}, internal.ErrCodeValidationFailed)
	v.Field("priority", d.Priority).OneOf([]string{PriorityLow, PriorityMedium, PriorityHigh}, internal.ErrCodeValidationFailed)
	return v.Validate()
}

type UpdateAnnouncementDTO struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

func (d *UpdateAnnouncementDTO) Validate() *internal.AppError {
	d.Title = strings.TrimSpace(d.Title)

	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MaxLength(200)
	v.Field("content", d.Content).Required()
	v.Field("type", d.Type).Required().OneOf([]string{TypeGeneral, TypeUrgent, TypeEvent}, internal.ErrCodeValidationFailed)
	v.Field("priority", d.Priority).Required().OneOf([]string{PriorityLow, PriorityMedium, PriorityHigh}, internal.ErrCodeValidationFailed)
	return v.Validate()
}
