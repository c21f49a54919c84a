package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	basketHnd "basket-service/internal/basket/handler"
	"basket-service/internal/config"
	"basket-service/internal/middleware"
	"basket-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, h *basketHnd.Handler, admins middleware.AdminChecker) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	// health-check
	r.Get("/health", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Get("/catalog/groups", h.Groups)

		r.Group(func(r chi.Router) {
			r.Use(middleware.UserID())

			r.Post("/resolve", h.Resolve)
			r.Post("/resolve/select", h.Select)

			r.Get("/cart", h.Cart)
			r.Post("/cart/items", h.AddItem)
			r.Delete("/cart/items/{product}", h.RemoveItem)
			r.Delete("/cart", h.ClearCart)
			r.Get("/cart/quote", h.Quote)
			r.Get("/cart/optimize", h.Optimize)
			r.Post("/session/end", h.EndSession)

			// администрирование каталога
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly(admins, logger))
				r.Post("/catalog/upload", h.Upload)
				r.Delete("/catalog", h.ClearCatalog)
			})
		})
	})

	return r
}
