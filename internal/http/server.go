// README: API gateway; registers HTTP routes and delegates to the session manager.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atlas/internal/llm"
	"atlas/internal/session"
	"atlas/internal/tracing"
)

const apiVersion = "1.0.0"

type ServerDeps struct {
	Manager  *session.Manager
	Registry *llm.Registry
	Tracer   *tracing.Tracer
	Log      *zap.Logger
}

type Server struct {
	manager *session.Manager
	reg     *llm.Registry
	tracer  *tracing.Tracer
	log     *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		manager: deps.Manager,
		reg:     deps.Registry,
		tracer:  deps.Tracer,
		log:     deps.Log,
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", s.HandleRoot)
	r.GET("/health", s.HandleHealth)
	r.POST("/api/chat", s.HandleChat)
	r.POST("/api/reset", s.HandleReset)
	r.GET("/api/models", s.HandleGetModels)
	r.POST("/api/models", s.HandleChangeModel)
	r.GET("/api/traces", s.HandleTraces)
	r.GET("/api/usage", s.HandleUsage)
	return r
}
