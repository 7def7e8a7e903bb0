package board

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"taskboard/internal/domains/todo/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortTitle     SortKey = model.FieldTitle
	SortStatus    SortKey = model.FieldStatus
	SortUpdatedAt SortKey = model.FieldUpdatedAt
	SortCreatedAt SortKey = model.FieldCreatedAt
)

// SortKeys is the order a user cycles through them.
var SortKeys = []SortKey{SortCreatedAt, SortTitle, SortStatus}

// Next returns the sort key after k in SortKeys.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)

	return SortKeys[(i+1)%len(SortKeys)]
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}

	return Descending
}

// FilterTasks keeps the tasks whose filter field contains the query, ignoring
// case. An empty query or key keeps everything.
func FilterTasks(tasks []model.Task, filter model.FilterState) []model.Task {
	if !filter.Active() {
		return slices.Clone(tasks)
	}

	query := strings.ToLower(filter.Query)
	kept := make([]model.Task, 0, len(tasks))

	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Field(filter.FilterKey)), query) {
			kept = append(kept, task)
		}
	}

	return kept
}

// SortTasks orders tasks in place. Equal keys keep their relative order and an
// unknown key leaves the slice as it is.
func SortTasks(tasks []model.Task, key SortKey, direction Direction, tag language.Tag) {
	compare := comparator(key, tag)
	if compare == nil {
		return
	}

	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		if direction == Descending {
			return -compare(a, b)
		}

		return compare(a, b)
	})
}

func comparator(key SortKey, tag language.Tag) func(a, b model.Task) int {
	switch key {
	case SortTitle:
		collator := collate.New(tag)

		return func(a, b model.Task) int {
			return collator.CompareString(a.Title, b.Title)
		}
	case SortStatus:
		return func(a, b model.Task) int {
			return cmp.Compare(a.Status.Rank(), b.Status.Rank())
		}
	case SortUpdatedAt, SortCreatedAt:
		return func(a, b model.Task) int {
			return a.UpdatedAt.Compare(b.UpdatedAt)
		}
	default:
		return nil
	}
}

func isBlank(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
