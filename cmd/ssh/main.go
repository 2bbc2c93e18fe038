package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/cache"
	"github.com/hasanpeal/AlphaSignalAI/internal/config"
	"github.com/hasanpeal/AlphaSignalAI/internal/provider"
	"github.com/hasanpeal/AlphaSignalAI/internal/service"
	"github.com/hasanpeal/AlphaSignalAI/internal/session"
	"github.com/hasanpeal/AlphaSignalAI/internal/tui"
	"github.com/hasanpeal/AlphaSignalAI/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initRedisFunc      = cache.InitRedis
	initTracerFunc     = tracing.InitTracer
	newSSHServerFunc   = wish.NewServer
	startSSHServerFunc = func(srv *ssh.Server) error { return srv.ListenAndServe() }
	shutdownSSHFunc    = func(srv *ssh.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify  = ossignal.Notify
	waitForSignalFunc  = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	tdProvider := provider.NewTwelveDataProvider(provider.TwelveDataConfig{
		APIKey: cfg.TwelveDataAPIKey,
	}, tracer)

	var sentimentFetcher service.SentimentFetcher
	if cfg.ScraperAPIKey != "" {
		scraper := provider.NewScraperProvider(provider.ScraperConfig{
			APIKey: cfg.ScraperAPIKey,
		}, tracer)
		sentimentFetcher = service.NewSentimentService(tracer, scraper)
	}
	marketService := service.NewMarketService(tracer, tdProvider, sentimentFetcher, cache.Client)

	sessions := session.NewStore(session.StoreConfig{
		Timeout:       time.Duration(cfg.SessionTimeoutMins) * time.Minute,
		SweepInterval: time.Duration(cfg.SessionSweepSecs) * time.Second,
	})
	go sessions.Start(ctx)

	var advisorService *service.AdvisorService
	if cfg.OpenAIAPIKey != "" {
		advisorService = service.NewAdvisorService(tracer, service.AdvisorConfig{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			MaxHistory: cfg.AdvisorMaxHistory,
		}, sessions)
	} else {
		log.Println("advisor disabled: no OpenAI key")
	}

	srv, err := newSSHServerFunc(
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(".ssh/alphasignal_ed25519"),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(marketService, advisorService)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	go func() {
		log.Printf("SSH TUI listening on %s", cfg.SSHAddr)
		if err := startSSHServerFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ssh listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownSSHFunc(srv, shutdownCtx); err != nil {
		log.Printf("SSH server forced to shutdown: %v", err)
	}

	log.Println("SSH server exiting")
}

func teaHandler(market tui.MarketQuerier, advisor *service.AdvisorService) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		svc := tui.Services{
			Market:   market,
			Username: s.User(),
		}
		if advisor != nil {
			svc.Advisor = advisor
		}

		model := tui.NewAppModel(svc)
		if pty, _, ok := s.Pty(); ok {
			model.SetSize(pty.Window.Width, pty.Window.Height)
		}
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
