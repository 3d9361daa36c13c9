// README: Interactive terminal chat over the same orchestrator as the API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"atlas/internal/agent"
	"atlas/internal/config"
	"atlas/internal/llm"
	"atlas/internal/observability"
	"atlas/internal/search"
	"atlas/internal/session"
	"atlas/internal/tracing"
)

const localSession = "local"

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

	ctx := context.Background()
	tracer := tracing.NewTracer(logger, nil)

	registry, err := llm.NewRegistry(cfg.LLM.DefaultModel)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LLM.OpenAIKey != "" {
		_ = registry.Register("openai", func(info llm.ModelInfo) (llm.Backend, error) {
			return llm.NewOpenAIBackend(cfg.LLM.OpenAIKey, info.ModelID), nil
		})
	}
	if cfg.LLM.GeminiKey != "" {
		if err := registry.Register("gemini", func(info llm.ModelInfo) (llm.Backend, error) {
			return llm.NewGeminiBackend(ctx, cfg.LLM.GeminiKey, info.ModelID)
		}); err != nil {
			log.Fatal(err)
		}
	}
	generator := llm.NewClient(registry, tracer)

	searchSvc := search.NewService(search.NewSerper(cfg.Search.SerperKey), nil, nil, logger)
	orchestrator := session.NewOrchestrator(
		agent.NewIntentClassifier(generator),
		agent.NewSearchAgent(generator, searchSvc),
		agent.NewPlanner(generator),
		agent.NewCommunicator(generator),
		tracer,
		logger,
	)
	manager := session.NewManager(orchestrator, registry)

	fmt.Println("Travel Agent: tell me where you want to go and when.")
	fmt.Println("Commands: /model <display name>, /models, /reset, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/reset":
			manager.Reset(localSession)
			fmt.Println("Session reset.")
		case line == "/models":
			for _, name := range registry.DisplayNames() {
				marker := "  "
				if name == manager.CurrentModel(localSession) {
					marker = "* "
				}
				fmt.Println(marker + name)
			}
		case strings.HasPrefix(line, "/model "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "/model "))
			if err := manager.SetModel(localSession, name); err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Println("Model changed to:", name)
		default:
			fmt.Println(manager.Process(ctx, localSession, line))
		}
	}
}
