// README: Entry point; loads config, wires providers and agents, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"atlas/internal/agent"
	"atlas/internal/config"
	httptransport "atlas/internal/http"
	"atlas/internal/infra"
	"atlas/internal/llm"
	"atlas/internal/observability"
	"atlas/internal/search"
	"atlas/internal/session"
	"atlas/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink tracing.Sink
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("db init", zap.Error(err))
		}
		defer dbPool.Close()
		sink = tracing.NewLedger(dbPool)
	}
	tracer := tracing.NewTracer(logger, sink)

	registry, err := llm.NewRegistry(cfg.LLM.DefaultModel)
	if err != nil {
		logger.Fatal("model registry", zap.Error(err))
	}
	if cfg.LLM.OpenAIKey != "" {
		err = registry.Register("openai", func(info llm.ModelInfo) (llm.Backend, error) {
			return llm.NewOpenAIBackend(cfg.LLM.OpenAIKey, info.ModelID), nil
		})
		if err != nil {
			logger.Fatal("openai backend", zap.Error(err))
		}
	}
	if cfg.LLM.GeminiKey != "" {
		err = registry.Register("gemini", func(info llm.ModelInfo) (llm.Backend, error) {
			return llm.NewGeminiBackend(ctx, cfg.LLM.GeminiKey, info.ModelID)
		})
		if err != nil {
			logger.Fatal("gemini backend", zap.Error(err))
		}
	}
	generator := llm.NewClient(registry, tracer)

	var cache *search.Cache
	if cfg.Redis.Addr != "" {
		cache = search.NewCache(infra.NewRedis(cfg.Redis.Addr), cfg.Search.CacheTTL)
	}
	var places search.PlaceSearcher
	if cfg.Search.MapsKey != "" {
		p, err := search.NewPlaces(cfg.Search.MapsKey)
		if err != nil {
			logger.Fatal("places client", zap.Error(err))
		}
		places = p
	}
	searchSvc := search.NewService(search.NewSerper(cfg.Search.SerperKey), places, cache, logger)

	orchestrator := session.NewOrchestrator(
		agent.NewIntentClassifier(generator),
		agent.NewSearchAgent(generator, searchSvc),
		agent.NewPlanner(generator),
		agent.NewCommunicator(generator),
		tracer,
		logger,
	)
	manager := session.NewManager(orchestrator, registry)

	server := httptransport.NewServer(httptransport.ServerDeps{
		Manager:  manager,
		Registry: registry,
		Tracer:   tracer,
		Log:      logger,
	})

	httpServer := &http.Server{Addr: cfg.HTTP.Addr, Handler: server.Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
