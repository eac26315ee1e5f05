package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wanyue/mindgarden/backend/internal/config"
	"github.com/wanyue/mindgarden/backend/internal/handler"
	ambienthandler "github.com/wanyue/mindgarden/backend/internal/handler/ambient"
	ambientmodel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
	"github.com/wanyue/mindgarden/backend/internal/model/persona"
	"github.com/wanyue/mindgarden/backend/internal/service/ai"
	ambientservice "github.com/wanyue/mindgarden/backend/internal/service/ambient"
	"github.com/wanyue/mindgarden/backend/internal/service/conversation"
	sessionservice "github.com/wanyue/mindgarden/backend/internal/service/session"
	"github.com/wanyue/mindgarden/backend/internal/service/speech"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	categoryStore := ambientmodel.NewMemoryStore(ambientmodel.Seed())

	// Session records live in a local sqlite file; losing them degrades the
	// REST surface but the live websocket sessions still work.
	var sessionSvc *sessionservice.Service
	sessionSvc, err = sessionservice.NewService(cfg.Database.Path)
	if err != nil {
		log.Printf("warning: failed to open session database %s: %v", cfg.Database.Path, err)
		log.Println("continuing without session persistence")
		sessionSvc = nil
	}

	// 没有模型凭证时退化为固定引导语，会话仍可进行。
	var responder conversation.Responder = conversation.StaticResponder{}
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with scripted guidance - 请检查 Ark 模型相关环境变量")
		} else {
			log.Println("AI service initialized successfully")
			responder = aiService
		}
	} else {
		log.Println("Ark 凭证未配置，使用固定引导语")
	}

	// 语音服务是实时会话的硬依赖：缺少凭证时跳过 WebSocket 功能。
	var speechService *speech.Service
	var registry *conversation.Registry
	if cfg.Speech.Enabled {
		speechService = speech.NewService(cfg.Speech)
		registry = conversation.NewRegistry(conversation.Collaborators{
			Transcriber: speechService,
			Responder:   responder,
			Synthesizer: speechService,
		}, conversation.Options{DebounceWindow: cfg.Conversation.DebounceWindow})
		log.Println("Speech service initialized successfully")
	} else {
		log.Println("语音服务凭证未配置，跳过实时会话功能初始化")
	}

	var trackFinder ambienthandler.TrackFinder
	if cfg.Spotify.Enabled() {
		trackFinder = ambientservice.NewService(cfg.Spotify)
		log.Println("Spotify ambient music service initialized")
	} else {
		log.Println("Spotify 凭证未配置，跳过背景音乐检索")
	}

	svcs := handler.Services{
		Personas:    personaStore,
		Categories:  categoryStore,
		Sessions:    sessionSvc,
		Registry:    registry,
		TrackFinder: trackFinder,
	}
	if speechService != nil {
		svcs.Synthesizer = speechService
	}

	startServer(ctx, cfg.Server, handler.NewRouter(svcs))
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Mind Garden backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
