package client

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"taskboard/internal/domains/todo/model"
	gModel "taskboard/shared/model"
)

// timestampLayouts covers what the API hands back for updated_at: RFC 3339
// from JSON clients, the sqlite driver's own format, and free-form text
// written by other tools.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"02/01/2006, 15:04:05",
}

// ParseTasks turns tabular results into tasks. Columns are matched by name,
// so their order does not matter; a missing column leaves the field empty.
func ParseTasks(sets []gModel.ResultSet) []model.Task {
	tasks := []model.Task{}

	for _, set := range sets {
		idIdx := set.Index(model.FieldID)
		titleIdx := set.Index(model.FieldTitle)
		descriptionIdx := set.Index(model.FieldDescription)
		statusIdx := set.Index(model.FieldStatus)
		updatedAtIdx := set.Index(model.FieldUpdatedAt)

		for _, row := range set.Values {
			tasks = append(tasks, model.Task{
				ID:          toInt64(cell(row, idIdx)),
				Title:       toString(cell(row, titleIdx)),
				Description: toString(cell(row, descriptionIdx)),
				Status:      model.Status(toString(cell(row, statusIdx))),
				UpdatedAt:   ParseTimestamp(toString(cell(row, updatedAtIdx))),
			})
		}
	}

	return tasks
}

// ParseTimestamp returns the zero time for text in no known layout.
func ParseTimestamp(text string) time.Time {
	for _, layout := range timestampLayouts {
		if stamp, err := time.Parse(layout, text); err == nil {
			return stamp
		}
	}

	return time.Time{}
}

func cell(row []any, index int) any {
	if index < 0 || index >= len(row) {
		return nil
	}

	return row[index]
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case json.Number:
		if id, err := v.Int64(); err == nil {
			return id
		}

		f, _ := v.Float64()

		return int64(math.Round(f))
	case float64:
		return int64(math.Round(v))
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
