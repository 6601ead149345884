package api

import (
	"net/http"

	"github.com/worldforge/mapgen/internal/config"
	"github.com/worldforge/mapgen/internal/runs"
	"github.com/worldforge/mapgen/internal/ws"
)

// NewRouter creates the HTTP router with all routes
func NewRouter(runManager *runs.Manager, hub *ws.Hub, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	handler := NewHandler(runManager, hub, cfg)

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Run routes
	mux.HandleFunc("POST /api/runs", handler.CreateRun)
	mux.HandleFunc("GET /api/runs/{id}", handler.GetRun)
	mux.HandleFunc("DELETE /api/runs/{id}", handler.CancelRun)

	// WebSocket
	mux.HandleFunc("GET /ws/runs/{id}", handler.WebSocket)

	// Add CORS middleware
	return corsMiddleware(mux)
}

// corsMiddleware adds CORS headers for development
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
