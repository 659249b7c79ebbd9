package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/httpserver/handlers"
)

func init() { Register(registerNextDose) }

func registerNextDose(r chi.Router, d deps.Deps) {
	r.Get("/next-dose", handlers.NextDose(d))
}
