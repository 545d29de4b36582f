package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ogurasousui/codex-minhex/internal/core/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry は metrics の登録と公開の両方に使うレジストリです。
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// NewRouter はユーザー API・ヘルスチェック・メトリクスのルーティングを構築します。
func NewRouter(users user.UseCase, reg Registry, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	userHandler := NewUserHandler(users, logger)
	health := &HealthHandler{}

	router := mux.NewRouter()
	router.Use(NewMetrics(reg).Middleware(logger))

	router.HandleFunc("/api/v1/users", userHandler.CreateUser).Methods(http.MethodPost)
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/", health.Root).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods(http.MethodGet)

	return router
}
