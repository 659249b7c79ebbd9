package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/httpserver/handlers"
)

func init() { Register(registerLogs) }

func registerLogs(r chi.Router, d deps.Deps) {
	r.Get("/logs", handlers.ListLogs(d))
	r.Post("/logs", handlers.AppendLog(d))
}
