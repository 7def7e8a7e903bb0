package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"taskboard/infras/database"
	"taskboard/infras/otel"
	"taskboard/internal/domains/todo/model"
	gDto "taskboard/shared/dto"
	gModel "taskboard/shared/model"
	gRepo "taskboard/shared/repository"
)

type Todo interface {
	Insert(ctx context.Context, model model.Todo) (int64, error)
	Select(ctx context.Context, filter gDto.FilterGroup) ([]gModel.ResultSet, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Todo]
}

func New(db *database.Connection, otel otel.Otel) Todo {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Todo](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
