package routes

import (
	"net/http"

	"github.com/coder-dkr/doomswear/internal/handlers"
	appmw "github.com/coder-dkr/doomswear/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes(h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Nothing interesting here peeps"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Works Fine!"))
	})

	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	r.With(appmw.Authenticated).Get("/auth/me", h.Me)

	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)

	r.With(appmw.Authenticated).Post("/orders", h.PlaceOrder)
	r.With(appmw.Authenticated).Get("/orders/{id}", h.GetOrder)

	r.With(appmw.Authenticated).Get("/wallet", h.Wallet)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
