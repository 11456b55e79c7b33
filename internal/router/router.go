package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/fastygo/taskboard/api/handler"
)

type Handlers struct {
	Board  *apiHandler.BoardHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/board", handlers.Board.GetBoard)
	r.GET("/api/v1/events", handlers.Board.Events)
	r.POST("/api/v1/seed", handlers.Board.Seed)

	r.GET("/api/v1/tasks", handlers.Board.GetTasks)
	r.POST("/api/v1/tasks", handlers.Board.CreateTask)
	r.POST("/api/v1/tasks/{id}/advance", handlers.Board.AdvanceTask)
	r.PUT("/api/v1/tasks/{id}/status", handlers.Board.MoveTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Board.DeleteTask)

	return r
}
