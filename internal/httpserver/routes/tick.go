package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/httpserver/handlers"
)

func init() { Register(registerTick) }

func registerTick(r chi.Router, d deps.Deps) {
	r.Post("/tick", handlers.Tick(d))
}
