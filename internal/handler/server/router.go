package server

import (
	"net/http"

	"github.com/bagdasarian/standup-bot/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("POST /slack/team", h.TeamCommand)
	mux.HandleFunc("POST /slack/status", h.StatusCommand)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
}
