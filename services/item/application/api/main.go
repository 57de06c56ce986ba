package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/boundedstr/services/item/application/handlers"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
// Items are scoped to the organization named in the path.
func ItemRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/orgs/{orgID}/item", func(r chi.Router) {
		r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
		r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
		r.Put("/{id}/name", handlers.NewRenameItemHandler(svcs).Execute)
		r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
	})
}
