// internal/router/server.go
package router

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/florist-backend/internal/config"
)

// NewServer wraps the engine in an http.Server. Request contexts derive
// from a base context that Shutdown cancels, so open event streams end
// instead of holding shutdown until its deadline.
func NewServer(cfg config.ServerConfig, engine *gin.Engine) *http.Server {
	base, cancel := context.WithCancel(context.Background())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return base
		},
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
