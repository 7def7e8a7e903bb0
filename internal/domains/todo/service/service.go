package service

import (
	"context"
	"fmt"

	"taskboard/infras/otel"
	"taskboard/internal/domains/todo/model"
	"taskboard/internal/domains/todo/model/dto"
	"taskboard/internal/domains/todo/repository"
	"taskboard/shared"
	"taskboard/shared/constant"
	gModel "taskboard/shared/model"

	"github.com/rs/zerolog/log"
)

type Todo interface {
	List(ctx context.Context, req dto.ListTodosRequest) ([]gModel.ResultSet, error)
	Create(ctx context.Context, req dto.CreateTodoRequest) (int64, error)
	Update(ctx context.Context, req dto.UpdateTodoRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo repository.Todo
	otel otel.Otel
}

func New(repo repository.Todo, otel otel.Otel) Todo {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, req dto.ListTodosRequest) (res []gModel.ResultSet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Select(ctx, shared.FilterBySubstring(req.Query, req.FilterKey, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list todos")

		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return res, nil
}

// Create stores a new todo and returns its id. Caller supplied ids are used as is;
// a duplicate id fails and leaves the existing row untouched.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, err = s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Int64("id", req.ID).Msg("failed to create todo")

		return 0, fmt.Errorf("failed to create todo: %w", err)
	}

	scope.SetAttribute("todo.id", id)

	return id, nil
}

// Update replaces every mutable field of the todo. Updating a missing id is not an error.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTodoRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Update(ctx, req.ToFields(), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update todo")

		return fmt.Errorf("failed to update todo: %w", err)
	}

	if affected == 0 {
		log.Debug().Int64("id", id).Msg("update matched no todo")
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete todo")

		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if affected == 0 {
		log.Debug().Int64("id", id).Msg("delete matched no todo")
	}

	return nil
}
