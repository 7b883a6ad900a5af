package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter() http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r)
}

func applyRoutes(r chi.Router) chi.Router {
	r.Route("/programs/{kind}", func(r chi.Router) {
		r.Post("/init", postInit)
		r.Post("/weeks", postAddWeeks)
	})

	return r
}
