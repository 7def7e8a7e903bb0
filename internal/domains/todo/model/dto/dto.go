package dto

import (
	"time"

	"taskboard/internal/domains/todo/model"
	"taskboard/shared/timezone"
)

type CreateTodoRequest struct {
	ID          int64      `json:"_id" validate:"gte=0"`
	Title       string     `json:"title" validate:"notblank"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"required"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ToModel converts the request into a row. A zero ID leaves id assignment to the database.
func (c *CreateTodoRequest) ToModel() model.Todo {
	return model.Todo{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		UpdatedAt:   stampOrNow(c.UpdatedAt),
	}
}

type UpdateTodoRequest struct {
	Title       string     `json:"title" validate:"notblank"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"required"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// ToFields returns the full replacement column set for an update.
func (u *UpdateTodoRequest) ToFields() map[string]any {
	return map[string]any{
		model.FieldTitle:       u.Title,
		model.FieldDescription: u.Description,
		model.FieldStatus:      u.Status,
		model.FieldUpdatedAt:   stampOrNow(u.UpdatedAt),
	}
}

type ListTodosRequest struct {
	Query     string `json:"query"`
	FilterKey string `json:"filter_key" validate:"omitempty,oneof=title description status"`
}

func stampOrNow(stamp *time.Time) time.Time {
	if stamp == nil || stamp.IsZero() {
		return timezone.Now()
	}

	return *stamp
}
