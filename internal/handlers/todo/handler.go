package todo

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"taskboard/infras/otel"
	"taskboard/internal/domains/todo/model/dto"
	"taskboard/internal/domains/todo/service"
	"taskboard/shared/constant"
	"taskboard/shared/failure"
	"taskboard/shared/validator"
	"taskboard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	BasePath = "/todos"

	MessageCreated = "Todo created successfully"
	MessageUpdated = "Todo updated successfully"
	MessageDeleted = "Todo deleted successfully"

	MessageErrorFetching = "Error fetching todos"
	MessageErrorCreating = "Error creating todo"
	MessageErrorUpdating = "Error updating todo"
	MessageErrorDeleting = "Error deleting todo"
)

type Handler struct {
	service service.Todo
	otel    otel.Otel
}

func New(service service.Todo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route(BasePath, func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Put("/{id}", handler.UpdateTodo)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
	})
}

// GetTodos returns every todo as a raw tabular result.
// @Summary List todos
// @Description Returns all rows as [{columns, values}], or [] when the table is empty.
// @Tags Todo
// @Produce json
// @Param query query string false "Case-insensitive substring to match"
// @Param filter_key query string false "Field to match the query against" Enums(title, description, status)
// @Success 200 {array} model.ResultSet
// @Failure 400 {string} string
// @Failure 500 {string} string "Error fetching todos"
// @Router /api/todos [get]
func (handler *Handler) GetTodos(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	req := dto.ListTodosRequest{
		Query:     request.URL.Query().Get(constant.RequestParamQuery),
		FilterKey: request.URL.Query().Get(constant.RequestParamFilterKey),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err, MessageErrorFetching)

		return
	}

	todos, err := handler.service.List(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(writer, err, MessageErrorFetching)

		return
	}

	response.WithJSON(writer, http.StatusOK, todos)
}

// CreateTodo stores a new todo.
// @Summary Create a todo
// @Description Stores the todo as given. When _id is omitted the database assigns one and the Location header carries it.
// @Tags Todo
// @Accept json
// @Produce plain
// @Param request body dto.CreateTodoRequest true "Todo"
// @Success 201 {string} string "Todo created successfully"
// @Header 201 {string} Location "/api/todos/{id}"
// @Failure 400 {string} string
// @Failure 500 {string} string "Error creating todo"
// @Router /api/todos [post]
func (handler *Handler) CreateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid create todo request")

		response.WithError(writer, err, MessageErrorCreating)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(writer, err, MessageErrorCreating)

		return
	}

	scope.AddEvent(MessageCreated)

	writer.Header().Set(constant.RequestHeaderLocation, location(request, id))
	response.WithText(writer, http.StatusCreated, MessageCreated)
}

// UpdateTodo replaces the fields of a todo.
// @Summary Update a todo
// @Description Replaces title, description, status and updated_at. Updating a missing id succeeds.
// @Tags Todo
// @Accept json
// @Produce plain
// @Param id path int true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Todo"
// @Success 200 {string} string "Todo updated successfully"
// @Failure 400 {string} string
// @Failure 500 {string} string "Error updating todo"
// @Router /api/todos/{id} [put]
func (handler *Handler) UpdateTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	id, err := pathID(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err, MessageErrorUpdating)

		return
	}

	req := dto.UpdateTodoRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid update todo request")

		response.WithError(writer, err, MessageErrorUpdating)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update todo")

		response.WithError(writer, err, MessageErrorUpdating)

		return
	}

	response.WithText(writer, http.StatusOK, MessageUpdated)
}

// DeleteTodo removes a todo.
// @Summary Delete a todo
// @Tags Todo
// @Produce plain
// @Param id path int true "Todo ID"
// @Success 200 {string} string "Todo deleted successfully"
// @Failure 400 {string} string
// @Failure 500 {string} string "Error deleting todo"
// @Router /api/todos/{id} [delete]
func (handler *Handler) DeleteTodo(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id, err := pathID(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err, MessageErrorDeleting)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete todo")

		response.WithError(writer, err, MessageErrorDeleting)

		return
	}

	response.WithText(writer, http.StatusOK, MessageDeleted)
}

func pathID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, constant.RequestParamID), 10, 64)
	if err != nil {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}

// location is the URL of the todo with the given id, relative to the collection path.
func location(request *http.Request, id int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimSuffix(request.URL.Path, "/"), id)
}
