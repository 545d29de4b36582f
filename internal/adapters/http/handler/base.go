package handler

import (
	"encoding/json"
	"net/http"
)

type (
	// ErrResponse は Problem Details 形式に準じたエラーレスポンスです。
	ErrResponse struct {
		Title    string `json:"title"`
		Status   int    `json:"status"`
		Detail   string `json:"detail,omitempty"`
		Instance string `json:"instance,omitempty"`
	}

	// Base は各ハンドラに共通のレスポンス処理を提供します。
	Base struct{}
)

func (b *Base) RespondWithError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	b.RespondWithJSON(w, status, ErrResponse{
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

func (b *Base) RespondWithJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
