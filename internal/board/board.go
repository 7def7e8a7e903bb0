// Package board holds the task list of a client session and derives the
// filtered, sorted view that gets rendered.
package board

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"taskboard/internal/domains/todo/model"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

const localIDJitter = 1000

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrUnknownField  = errors.New("unknown task field")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrEmptyTitle    = errors.New("task title must not be blank")
)

//go:generate go run go.uber.org/mock/mockgen -source=./board.go -destination=./mocks/api_mock.go -package=mocks

// API persists tasks remotely. A Board without one keeps tasks in memory only.
type API interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task model.Task) (int64, error)
	Update(ctx context.Context, task model.Task) error
	Delete(ctx context.Context, id int64) error
}

type Stats struct {
	All        int
	Todo       int
	InProgress int
	Done       int
}

// Board is safe for concurrent use. Mutations of one task run one at a time,
// in arrival order; different tasks proceed independently.
type Board struct {
	api API

	mu        sync.RWMutex
	tasks     []model.Task
	sortKey   SortKey
	direction Direction
	filter    model.FilterState

	locks    *keyedMutex
	now      func() time.Time
	newID    func() int64
	language language.Tag
}

type Option func(*Board)

// WithClock replaces the time source used to stamp tasks.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithIDSource replaces local id generation. Unused when an API is set.
func WithIDSource(newID func() int64) Option {
	return func(b *Board) {
		b.newID = newID
	}
}

// WithLanguage selects the collation used to sort titles.
func WithLanguage(tag language.Tag) Option {
	return func(b *Board) {
		b.language = tag
	}
}

func WithSort(key SortKey, direction Direction) Option {
	return func(b *Board) {
		b.sortKey = key
		b.direction = direction
	}
}

func WithTasks(tasks []model.Task) Option {
	return func(b *Board) {
		b.tasks = slices.Clone(tasks)
	}
}

func New(api API, opts ...Option) *Board {
	b := &Board{
		api:       api,
		tasks:     []model.Task{},
		sortKey:   SortCreatedAt,
		direction: Ascending,
		locks:     newKeyedMutex(),
		now:       time.Now,
		language:  language.English,
	}

	b.newID = b.localID

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Networked reports whether changes are persisted through an API.
func (b *Board) Networked() bool {
	return b.api != nil
}

// Load replaces the list with what the API holds. Without an API it does nothing.
func (b *Board) Load(ctx context.Context) error {
	if b.api == nil {
		return nil
	}

	tasks, err := b.api.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load tasks")

		return errors.Wrap(err, "load tasks")
	}

	b.mu.Lock()
	b.tasks = tasks
	b.mu.Unlock()

	return nil
}

// Add appends draft as a new task stamped now, with status Todo unless one is given.
// With an API the task is only appended once the server has stored it, under the
// id the server reports.
func (b *Board) Add(ctx context.Context, draft model.Task) (model.Task, error) {
	task := draft
	task.UpdatedAt = b.now()

	if task.Status == "" {
		task.Status = model.StatusTodo
	}

	if err := validate(task); err != nil {
		return model.Task{}, err
	}

	if b.api != nil {
		task.ID = 0

		id, err := b.api.Create(ctx, task)
		if err != nil {
			log.Error().Err(err).Str("title", task.Title).Msg("failed to create task")

			return model.Task{}, errors.Wrap(err, "create task")
		}

		task.ID = id
	} else if task.ID == 0 {
		task.ID = b.newID()
	}

	b.mu.Lock()
	b.tasks = append(b.tasks, task)
	b.mu.Unlock()

	return task, nil
}

// Update replaces one field of a task and restamps it.
func (b *Board) Update(ctx context.Context, id int64, field, value string) error {
	unlock := b.locks.Lock(id)
	defer unlock()

	task, ok := b.find(id)
	if !ok {
		return ErrTaskNotFound
	}

	return b.updateLocked(ctx, task, field, value)
}

// Advance moves a task one step along the status cycle. The step is taken from
// the status the task has once earlier changes to it have finished.
func (b *Board) Advance(ctx context.Context, id int64) error {
	unlock := b.locks.Lock(id)
	defer unlock()

	task, ok := b.find(id)
	if !ok {
		return ErrTaskNotFound
	}

	return b.updateLocked(ctx, task, model.FieldStatus, string(task.Status.Next()))
}

// updateLocked expects the lock for task.ID to be held.
func (b *Board) updateLocked(ctx context.Context, task model.Task, field, value string) error {
	switch field {
	case model.FieldTitle:
		if isBlank(value) {
			return ErrEmptyTitle
		}

		task.Title = value
	case model.FieldDescription:
		task.Description = value
	case model.FieldStatus:
		if !model.Status(value).Valid() {
			return errors.Wrapf(ErrInvalidStatus, "%q", value)
		}

		task.Status = model.Status(value)
	default:
		return errors.Wrapf(ErrUnknownField, "%q", field)
	}

	task.UpdatedAt = b.now()

	if b.api != nil {
		if err := b.api.Update(ctx, task); err != nil {
			log.Error().Err(err).Int64("id", task.ID).Str("field", field).Msg("failed to update task")

			return errors.Wrap(err, "update task")
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(task.ID); i >= 0 {
		b.tasks[i] = task
	}

	return nil
}

func (b *Board) Delete(ctx context.Context, id int64) error {
	unlock := b.locks.Lock(id)
	defer unlock()

	if _, ok := b.find(id); !ok {
		return ErrTaskNotFound
	}

	if b.api != nil {
		if err := b.api.Delete(ctx, id); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to delete task")

			return errors.Wrap(err, "delete task")
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(id); i >= 0 {
		b.tasks = slices.Delete(b.tasks, i, i+1)
	}

	return nil
}

// SetFilter replaces query and key together.
func (b *Board) SetFilter(query, filterKey string) {
	b.mu.Lock()
	b.filter = model.FilterState{Query: query, FilterKey: filterKey}
	b.mu.Unlock()
}

func (b *Board) Filter() model.FilterState {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.filter
}

func (b *Board) SetSort(key SortKey) {
	b.mu.Lock()
	b.sortKey = key
	b.mu.Unlock()
}

func (b *Board) ToggleSortDirection() {
	b.mu.Lock()
	b.direction = b.direction.Toggle()
	b.mu.Unlock()
}

func (b *Board) Sort() (SortKey, Direction) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.sortKey, b.direction
}

// Tasks returns the stored list in stored order.
func (b *Board) Tasks() []model.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.tasks)
}

// View derives what gets rendered: the filtered tasks in sort order. The stored
// list is left as it is.
func (b *Board) View() []model.Task {
	b.mu.RLock()
	tasks := slices.Clone(b.tasks)
	filter := b.filter
	key, direction := b.sortKey, b.direction
	b.mu.RUnlock()

	view := FilterTasks(tasks, filter)
	SortTasks(view, key, direction, b.language)

	return view
}

// Stats counts the stored tasks per status, ignoring the filter.
func (b *Board) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := Stats{All: len(b.tasks)}

	for _, task := range b.tasks {
		switch task.Status {
		case model.StatusTodo:
			stats.Todo++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusDone:
			stats.Done++
		}
	}

	return stats
}

func (b *Board) find(id int64) (model.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.indexOf(id); i >= 0 {
		return b.tasks[i], true
	}

	return model.Task{}, false
}

// indexOf expects b.mu to be held.
func (b *Board) indexOf(id int64) int {
	return slices.IndexFunc(b.tasks, func(task model.Task) bool {
		return task.ID == id
	})
}

// localID mirrors the id scheme of offline clients: the current unix
// milliseconds plus a random offset below 1000.
func (b *Board) localID() int64 {
	return b.now().UnixMilli() + rand.Int64N(localIDJitter) //nolint:gosec
}

func validate(task model.Task) error {
	if !task.Status.Valid() {
		return errors.Wrapf(ErrInvalidStatus, "%q", task.Status)
	}

	if isBlank(task.Title) {
		return ErrEmptyTitle
	}

	return nil
}
