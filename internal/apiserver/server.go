package apiserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/platewise/platewise/internal/config"
)

// NewServer creates the HTTP server for the http run mode. WriteTimeout is
// zero because the SSE transport holds long-lived streaming responses.
func NewServer(cfg *config.Config, mcpHandler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port),
		Handler:      NewRouter(mcpHandler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}
}
