package handler

import "net/http"

// HealthHandler はヘルスチェックとルートのエンドポイントです。
type HealthHandler struct {
	Base
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "minhex - minimal hexagonal architecture"})
}
