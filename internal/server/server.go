package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dekut-chatbot/internal/bot"
	"dekut-chatbot/internal/handler"
)

// Server wires the chat engine into a gin HTTP server.
type Server struct {
	router *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

// NewServer builds the router and routes around an engine handle.
func NewServer(engine *bot.Engine, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*")

	s := &Server{
		router: router,
		logger: logger,
	}
	s.setupRoutes(engine)

	return s
}

func (s *Server) setupRoutes(engine *bot.Engine) {
	chatHandler := handler.NewChatHandler(engine, s.logger)

	s.router.GET("/", chatHandler.Home)
	s.router.GET("/health", chatHandler.Health)
	s.router.POST("/chat", chatHandler.Chat)
}

// Run starts the server and blocks until it stops.
func (s *Server) Run(port string) error {
	s.srv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	s.logger.Info("Server starting", zap.String("port", port))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
