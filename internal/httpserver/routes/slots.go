package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/pilldeck/pilldeck/internal/httpserver/deps"
	"github.com/pilldeck/pilldeck/internal/httpserver/handlers"
)

func init() { Register(registerSlots) }

func registerSlots(r chi.Router, d deps.Deps) {
	r.Get("/slots", handlers.ListSlots(d))
	r.Get("/slots/{slotNumber}", handlers.GetSlot(d))
	r.Put("/slots/{slotNumber}", handlers.UpdateSlot(d))
	r.Delete("/slots/{slotNumber}", handlers.ClearSlot(d))
}
