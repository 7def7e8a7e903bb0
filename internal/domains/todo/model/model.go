package model

import "time"

const (
	TableName  = "todos"
	EntityName = "todo"

	FieldID          = "_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldUpdatedAt   = "updated_at"

	// FieldCreatedAt is accepted as a sort key and orders by FieldUpdatedAt.
	FieldCreatedAt = "created_at"
)

// Todo is a persisted row of the todos table. Status is stored verbatim.
type Todo struct {
	ID          int64     `db:"_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Status      string    `db:"status"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Task is the client-side view of a todo. A zero UpdatedAt marks a draft
// that has not been saved yet.
type Task struct {
	ID          int64     `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field returns the text value of a filterable field, or "" for unknown names.
func (t Task) Field(name string) string {
	switch name {
	case FieldTitle:
		return t.Title
	case FieldDescription:
		return t.Description
	case FieldStatus:
		return string(t.Status)
	}

	return ""
}

type FilterState struct {
	Query     string `json:"query"`
	FilterKey string `json:"filter_key"`
}

// Active reports whether the filter narrows the list at all.
func (f FilterState) Active() bool {
	return f.Query != "" && f.FilterKey != ""
}

// FilterableFields lists the keys a FilterState may target.
var FilterableFields = []string{FieldTitle, FieldDescription, FieldStatus}
