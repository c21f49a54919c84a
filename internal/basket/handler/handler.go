package handler

import (
	"github.com/rs/zerolog"

	"basket-service/internal/basket/service"
	"basket-service/internal/config"
	"basket-service/internal/session"
)

// Handler отдаёт движок корзины по HTTP. Корзина и незавершённый выбор
// пользователя живут в session.Store, каталог в service.Catalog.
type Handler struct {
	cfg      config.Config
	catalog  *service.Catalog
	sessions *session.Store
	opt      *service.Optimizer
	logger   zerolog.Logger
}

func New(cfg config.Config, catalog *service.Catalog, sessions *session.Store, opt *service.Optimizer, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		catalog:  catalog,
		sessions: sessions,
		opt:      opt,
		logger:   logger.With().Str("component", "http").Logger(),
	}
}
