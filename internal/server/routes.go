package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deal_hunter/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/deals", func(r chi.Router) {
				r.Get("/recent", handler(s.getV1DealsRecent))
				r.Get("/stats", handler(s.getV1DealsStats))
			})
		})

		r.Route("/webhook", func(r chi.Router) {
			r.Get("/", handler(s.getWebhook))
			r.Post("/", handler(s.postWebhook))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
