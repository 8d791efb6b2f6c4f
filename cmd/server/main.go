package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/a2a"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/analysis"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/api"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/chat"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/config"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/document"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/fallback"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/gateway"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/logger"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/prompt"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/session"
	"github.com/BerylCAtieno/finance-bill-advisor/internal/updates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	middlewares := []gateway.Middleware{
		gateway.Logging(logg),
		gateway.Timeout(cfg.LLMTimeout()),
		gateway.RateLimit(cfg.LLMRPS, cfg.LLMBurst),
	}

	gw := gateway.New()
	register := func(name string, p gateway.Provider, err error) {
		if err != nil {
			// Requests routed to this provider fail with err and fall through
			// the chain.
			logg.Warn("provider unavailable", zap.String("provider", name), zap.Error(err))
			gw.Register(name, nil, err)
			return
		}
		gw.Register(name, gateway.Wrap(p, middlewares...), nil)
		logg.Info("provider ready", zap.String("provider", name))
	}

	openai, err := gateway.NewOpenAIProvider(gateway.OpenAIConfig{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	register(gateway.OpenAI, openai, err)

	hf, err := gateway.NewHuggingFaceProvider(gateway.HuggingFaceConfig{
		APIKey:   cfg.HuggingFaceKey,
		ModelURL: cfg.HuggingFaceModelURL,
	})
	register(gateway.HuggingFace, hf, err)

	gemini, err := gateway.NewGeminiProvider(ctx, gateway.GeminiConfig{
		APIKey: cfg.GeminiKey,
		Model:  cfg.GeminiModel,
	})
	register(gateway.Gemini, gemini, err)
	if err == nil {
		defer gemini.Close()
	}

	var updatesProvider gateway.Provider
	perplexity, err := gateway.NewPerplexityProvider(gateway.PerplexityConfig{
		APIKey:  cfg.PerplexityKey,
		BaseURL: cfg.PerplexityBaseURL,
	})
	if err == nil {
		updatesProvider = gateway.Wrap(perplexity, middlewares...)
	}
	checker := updates.NewChecker(updatesProvider, logg)

	if cfg.UpdatesSchedule != "" && checker.Enabled() {
		scheduler, err := updates.NewScheduler(checker, cfg.UpdatesSchedule, cfg.LLMTimeout(), logg)
		if err != nil {
			logg.Fatal("Failed to schedule update checks", zap.Error(err))
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
		logg.Info("update checks scheduled", zap.String("schedule", cfg.UpdatesSchedule))
	}

	chains := analysis.DefaultChains()
	static := fallback.New(cfg.RecipientList(), nil)
	responder := chat.NewResponder(gw, chains[prompt.ChatTurn], logg)

	handler := api.NewHandler(
		session.NewStore(cfg.SessionCapacity, cfg.SessionExpiry()),
		analysis.NewService(gw, static, chains, logg),
		responder,
		document.NewProcessor(document.DefaultMaxBytes, logg),
		checker,
		logg,
	)
	router := api.NewRouter(handler, api.RouterConfig{
		Production:        cfg.IsProduction(),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
	}, logg)
	a2a.NewHandler(responder, cfg.BaseURL(), logg).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("Finance Bill advisor starting",
			zap.String("addr", srv.Addr),
			zap.String("agent_card", cfg.BaseURL()+a2a.AgentCardPath),
			zap.String("a2a_endpoint", cfg.BaseURL()+a2a.AdvisorPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logg.Info("server stopped gracefully")
}
