package board_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/board/mocks"
	"taskboard/internal/domains/todo/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var baseTime = time.Date(2024, 3, 18, 8, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Minute)

	return c.now
}

func newLocalBoard(tasks ...model.Task) *board.Board {
	clock := &fakeClock{now: baseTime}

	return board.New(nil, board.WithClock(clock.Now), board.WithTasks(tasks))
}

func TestBoard_AddLocal(t *testing.T) {
	b := board.New(nil, board.WithClock(func() time.Time { return baseTime }))

	task, err := b.Add(context.Background(), model.Task{Title: "Buy groceries", Description: "Milk"})
	require.NoError(t, err)

	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, baseTime, task.UpdatedAt)
	assert.GreaterOrEqual(t, task.ID, baseTime.UnixMilli())
	assert.Less(t, task.ID, baseTime.UnixMilli()+1000)
	assert.Equal(t, []model.Task{task}, b.Tasks())
	assert.False(t, b.Networked())
}

func TestBoard_AddRejectsInvalidDrafts(t *testing.T) {
	b := newLocalBoard()

	_, err := b.Add(context.Background(), model.Task{Title: "  "})
	assert.ErrorIs(t, err, board.ErrEmptyTitle)

	_, err = b.Add(context.Background(), model.Task{Title: "Read", Status: "pending"})
	assert.ErrorIs(t, err, board.ErrInvalidStatus)

	assert.Empty(t, b.Tasks())
}

func TestBoard_AddNetworked(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	b := board.New(api, board.WithClock(func() time.Time { return baseTime }))

	api.EXPECT().Create(gomock.Any(), model.Task{Title: "Write a report", Status: model.StatusTodo, UpdatedAt: baseTime}).
		Return(int64(2), nil)

	task, err := b.Add(context.Background(), model.Task{ID: 99, Title: "Write a report"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), task.ID)
	assert.Len(t, b.Tasks(), 1)

	api.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))

	_, err = b.Add(context.Background(), model.Task{Title: "Pay bills"})
	assert.Error(t, err)
	assert.Len(t, b.Tasks(), 1)
}

func TestBoard_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	b := board.New(api)

	tasks := []model.Task{{ID: 1, Title: "Buy groceries", Status: model.StatusTodo}}

	api.EXPECT().List(gomock.Any()).Return(tasks, nil)
	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, tasks, b.Tasks())

	api.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))
	assert.Error(t, b.Load(context.Background()))
	assert.Equal(t, tasks, b.Tasks())

	assert.NoError(t, newLocalBoard().Load(context.Background()))
}

func TestBoard_Update(t *testing.T) {
	ctx := context.Background()
	b := newLocalBoard(model.Task{ID: 3, Title: "Call John", Status: model.StatusTodo, UpdatedAt: baseTime})

	require.NoError(t, b.Update(ctx, 3, model.FieldTitle, "Call Jane"))
	require.NoError(t, b.Update(ctx, 3, model.FieldDescription, "Reschedule meeting"))

	task := b.Tasks()[0]
	assert.Equal(t, "Call Jane", task.Title)
	assert.Equal(t, "Reschedule meeting", task.Description)
	assert.True(t, task.UpdatedAt.After(baseTime))

	assert.ErrorIs(t, b.Update(ctx, 42, model.FieldTitle, "x"), board.ErrTaskNotFound)
	assert.ErrorIs(t, b.Update(ctx, 3, "priority", "high"), board.ErrUnknownField)
	assert.ErrorIs(t, b.Update(ctx, 3, model.FieldStatus, "pending"), board.ErrInvalidStatus)
	assert.ErrorIs(t, b.Update(ctx, 3, model.FieldTitle, ""), board.ErrEmptyTitle)
	assert.Equal(t, task, b.Tasks()[0])
}

func TestBoard_UpdateNetworkedSendsMergedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	stamp := baseTime.Add(time.Hour)
	b := board.New(api,
		board.WithClock(func() time.Time { return stamp }),
		board.WithTasks([]model.Task{{ID: 3, Title: "Call John", Description: "Phone", Status: model.StatusTodo, UpdatedAt: baseTime}}),
	)

	merged := model.Task{ID: 3, Title: "Call John", Description: "Phone", Status: model.StatusDone, UpdatedAt: stamp}

	api.EXPECT().Update(gomock.Any(), merged).Return(nil)
	require.NoError(t, b.Update(context.Background(), 3, model.FieldStatus, "Done"))
	assert.Equal(t, merged, b.Tasks()[0])

	api.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("500 Error updating todo"))
	assert.Error(t, b.Update(context.Background(), 3, model.FieldTitle, "Call Jane"))
	assert.Equal(t, merged, b.Tasks()[0])
}

func TestBoard_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	b := board.New(api, board.WithTasks([]model.Task{
		{ID: 4, Title: "Pay bills", Status: model.StatusTodo},
		{ID: 5, Title: "Walk dog", Status: model.StatusTodo},
	}))

	api.EXPECT().Delete(gomock.Any(), int64(4)).Return(errors.New("offline"))
	assert.Error(t, b.Delete(context.Background(), 4))
	assert.Len(t, b.Tasks(), 2)

	api.EXPECT().Delete(gomock.Any(), int64(4)).Return(nil)
	require.NoError(t, b.Delete(context.Background(), 4))
	assert.Equal(t, int64(5), b.Tasks()[0].ID)

	assert.ErrorIs(t, b.Delete(context.Background(), 4), board.ErrTaskNotFound)
}

func TestBoard_AdvanceCyclesInThreeSteps(t *testing.T) {
	ctx := context.Background()
	b := newLocalBoard(model.Task{ID: 1, Title: "Read", Status: model.StatusTodo})

	var seen []model.Status

	for range 3 {
		require.NoError(t, b.Advance(ctx, 1))
		seen = append(seen, b.Tasks()[0].Status)
	}

	assert.Equal(t, []model.Status{model.StatusInProgress, model.StatusDone, model.StatusTodo}, seen)
	assert.ErrorIs(t, b.Advance(ctx, 2), board.ErrTaskNotFound)
}

func TestBoard_Stats(t *testing.T) {
	b := newLocalBoard(
		model.Task{ID: 1, Title: "a", Status: model.StatusTodo},
		model.Task{ID: 2, Title: "b", Status: model.StatusTodo},
		model.Task{ID: 3, Title: "c", Status: model.StatusInProgress},
		model.Task{ID: 4, Title: "d", Status: model.StatusDone},
		model.Task{ID: 5, Title: "e", Status: "pending"},
	)
	b.SetFilter("a", model.FieldTitle)

	assert.Equal(t, board.Stats{All: 5, Todo: 2, InProgress: 1, Done: 1}, b.Stats())
}

func TestBoard_ViewFiltersThenSorts(t *testing.T) {
	b := newLocalBoard(
		model.Task{ID: 1, Title: "Pay bills", Status: model.StatusDone, UpdatedAt: baseTime},
		model.Task{ID: 2, Title: "Buy groceries", Status: model.StatusTodo, UpdatedAt: baseTime.Add(time.Hour)},
		model.Task{ID: 3, Title: "Groom the cat", Status: model.StatusInProgress, UpdatedAt: baseTime.Add(-time.Hour)},
	)

	assert.Equal(t, []int64{3, 1, 2}, ids(b.View()))

	b.SetFilter("GRO", model.FieldTitle)
	assert.Equal(t, []int64{3, 2}, ids(b.View()))

	b.SetSort(board.SortTitle)
	assert.Equal(t, []int64{2, 3}, ids(b.View()))

	b.ToggleSortDirection()
	assert.Equal(t, []int64{3, 2}, ids(b.View()))

	key, direction := b.Sort()
	assert.Equal(t, board.SortTitle, key)
	assert.Equal(t, board.Descending, direction)
	assert.Equal(t, model.FilterState{Query: "GRO", FilterKey: model.FieldTitle}, b.Filter())

	assert.Equal(t, []int64{1, 2, 3}, ids(b.Tasks()))
}

func TestBoard_SameTaskMutationsAreSerialised(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	b := board.New(api, board.WithTasks([]model.Task{
		{ID: 1, Title: "Read", Status: model.StatusTodo},
		{ID: 2, Title: "Write", Status: model.StatusTodo},
	}))

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	otherDone := make(chan struct{})

	var (
		mu    sync.Mutex
		order []string
	)

	record := func(event string) {
		mu.Lock()
		order = append(order, event)
		mu.Unlock()
	}

	gomock.InOrder(
		api.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task model.Task) error {
			record("first:" + task.Title)
			close(firstStarted)
			<-releaseFirst

			return nil
		}),
		api.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task model.Task) error {
			record("second:" + task.Title)

			return nil
		}),
	)

	api.EXPECT().Delete(gomock.Any(), int64(2)).DoAndReturn(func(_ context.Context, _ int64) error {
		record("other")

		return nil
	})

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		assert.NoError(t, b.Update(context.Background(), 1, model.FieldTitle, "Read A"))
	}()

	<-firstStarted

	go func() {
		defer wg.Done()
		assert.NoError(t, b.Update(context.Background(), 1, model.FieldDescription, "chapter 2"))
	}()

	go func() {
		defer close(otherDone)
		assert.NoError(t, b.Delete(context.Background(), 2))
	}()

	<-otherDone
	close(releaseFirst)
	wg.Wait()

	assert.Equal(t, []string{"first:Read A", "other", "second:Read A"}, order)

	task := b.Tasks()[0]
	assert.Equal(t, "Read A", task.Title)
	assert.Equal(t, "chapter 2", task.Description)
}

func TestBoard_ConcurrentAdvancesOnOneTaskBothApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	b := board.New(api, board.WithTasks([]model.Task{{ID: 1, Title: "Read", Status: model.StatusTodo}}))

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	var sent []model.Status

	gomock.InOrder(
		api.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task model.Task) error {
			sent = append(sent, task.Status)
			close(firstStarted)
			<-releaseFirst

			return nil
		}),
		api.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task model.Task) error {
			sent = append(sent, task.Status)

			return nil
		}),
	)

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		assert.NoError(t, b.Advance(context.Background(), 1))
	}()

	<-firstStarted

	go func() {
		defer wg.Done()
		assert.NoError(t, b.Advance(context.Background(), 1))
	}()

	time.Sleep(50 * time.Millisecond)
	close(releaseFirst)
	wg.Wait()

	assert.Equal(t, []model.Status{model.StatusInProgress, model.StatusDone}, sent)
	assert.Equal(t, model.StatusDone, b.Tasks()[0].Status)
}

func ids(tasks []model.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}

	return out
}
