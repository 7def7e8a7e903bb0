package repository_test

import (
	"context"
	"testing"

	"taskboard/infras/database"
	otelMocks "taskboard/infras/otel/mocks"
	"taskboard/shared"
	"taskboard/shared/dto"
	"taskboard/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   int64   `db:"_id"`
	Body string  `db:"body"`
	Tag  *string `db:"tag"`
}

func newNoteRepository(t *testing.T) repository.Repository[note] {
	t.Helper()

	conn, err := database.CreateSQLiteConnection(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.DB.Exec("CREATE TABLE notes (_id INTEGER PRIMARY KEY, body TEXT NOT NULL, tag TEXT)")
	require.NoError(t, err)

	return repository.NewRepository[note]("note", "notes", "_id", conn, otelMocks.NewOtel())
}

func TestRepository_InsertAndSelect(t *testing.T) {
	ctx := context.Background()
	repo := newNoteRepository(t)

	sets, err := repo.Select(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)

	id, err := repo.Insert(ctx, note{ID: 7, Body: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	tag := "home"
	id, err = repo.Insert(ctx, note{Body: "second", Tag: &tag})
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)

	sets, err = repo.Select(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"_id", "body", "tag"}, sets[0].Columns)
	assert.Equal(t, [][]any{
		{int64(7), "first", nil},
		{int64(8), "second", "home"},
	}, sets[0].Values)
}

func TestRepository_InsertDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := newNoteRepository(t)

	_, err := repo.Insert(ctx, note{ID: 1, Body: "original"})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, note{ID: 1, Body: "duplicate"})
	require.Error(t, err)

	sets, err := repo.Select(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, sets[0].Values, 1)
	assert.Equal(t, "original", sets[0].Values[0][1])
}

func TestRepository_SelectWithFilter(t *testing.T) {
	ctx := context.Background()
	repo := newNoteRepository(t)

	for _, body := range []string{"Buy Groceries", "Walk the dog", "100% done"} {
		_, err := repo.Insert(ctx, note{Body: body})
		require.NoError(t, err)
	}

	sets, err := repo.Select(ctx, shared.FilterBySubstring("groc", "body", "notes"))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	require.Len(t, sets[0].Values, 1)
	assert.Equal(t, "Buy Groceries", sets[0].Values[0][1])

	sets, err = repo.Select(ctx, shared.FilterBySubstring("%", "body", "notes"))
	require.NoError(t, err)
	require.Len(t, sets[0].Values, 1)
	assert.Equal(t, "100% done", sets[0].Values[0][1])

	sets, err = repo.Select(ctx, shared.FilterBySubstring("nothing", "body", "notes"))
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestRepository_SelectWithFilterFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	repo := newNoteRepository(t)

	for _, body := range []string{"Inscrire à l'école", "Ecole du soir"} {
		_, err := repo.Insert(ctx, note{Body: body})
		require.NoError(t, err)
	}

	sets, err := repo.Select(ctx, shared.FilterBySubstring("ÉCOLE", "body", "notes"))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	require.Len(t, sets[0].Values, 1)
	assert.Equal(t, "Inscrire à l'école", sets[0].Values[0][1])
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newNoteRepository(t)

	_, err := repo.Insert(ctx, note{ID: 1, Body: "draft"})
	require.NoError(t, err)

	affected, err := repo.Update(ctx, map[string]any{"body": "final", "tag": nil}, shared.FilterByID(1, "_id", "notes"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Update(ctx, map[string]any{"body": "ghost"}, shared.FilterByID(99, "_id", "notes"))
	require.NoError(t, err)
	assert.Zero(t, affected)

	sets, err := repo.Select(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, "final", sets[0].Values[0][1])

	affected, err = repo.Delete(ctx, shared.FilterByID(1, "_id", "notes"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	sets, err = repo.Select(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestRepository_RequiresFilter(t *testing.T) {
	ctx := context.Background()
	repo := newNoteRepository(t)

	_, err := repo.Delete(ctx, dto.FilterGroup{})
	assert.Error(t, err)

	_, err = repo.Update(ctx, map[string]any{"body": "x"}, dto.FilterGroup{})
	assert.Error(t, err)

	_, err = repo.Update(ctx, map[string]any{}, shared.FilterByID(1, "_id", "notes"))
	assert.Error(t, err)
}
