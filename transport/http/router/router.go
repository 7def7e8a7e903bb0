package router

import (
	"taskboard/internal/handlers/todo"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "taskboard/docs" // swagger document
)

const (
	APIPrefix   = "/api"
	SwaggerPath = "/swagger"
)

type DomainHandlers struct {
	Todo todo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(APIPrefix, func(routerGroup chi.Router) {
		r.DomainHandlers.Todo.Router(routerGroup)
	})

	router.Get(SwaggerPath+"/*", httpSwagger.Handler(httpSwagger.URL(SwaggerPath+"/doc.json")))
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
