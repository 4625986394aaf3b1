package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/bagdasarian/standup-bot/internal/handler"
)

type Server struct {
	handler *handler.Handler
	logger  *zap.Logger
	server  *http.Server
}

func NewServer(h *handler.Handler, addr string, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	SetupRoutes(mux, h)

	return &Server{
		handler: h,
		logger:  logger,
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

func (s *Server) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
