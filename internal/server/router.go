package server

import (
	"net/http"

	"partstrack/internal/order/controller"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(orderCtrl *controller.BulkController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", orderCtrl.ListOrders)
		r.Post("/bulk/status", orderCtrl.BulkStatus)
		r.Post("/bulk/cancel", orderCtrl.BulkCancel)
		r.Post("/bulk/delete", orderCtrl.BulkDelete)
	})

	logger.Info("router configured")

	return r
}
