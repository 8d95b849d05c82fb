package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexprep/lexprep/internal/api"
	"github.com/lexprep/lexprep/internal/config"
	"github.com/lexprep/lexprep/internal/exam"
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/quiz"
	"github.com/lexprep/lexprep/internal/sessionstore/sqlite"
	"github.com/lexprep/lexprep/internal/submitqueue"
	"github.com/lexprep/lexprep/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("LexPrep Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("environment=%s", cfg.Environment)
	log.Debug("api_base_url=%s", cfg.APIBaseURL)
	log.Debug("session_db_path=%s", cfg.SessionDBPath)
	log.Debug("session_ttl_hours=%d", cfg.SessionTTLHours)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("submit_worker_count=%d", cfg.SubmitWorkerCount)
	log.Debug("submit_queue_size=%d", cfg.SubmitQueueSize)

	// Open session store
	sessions, err := sqlite.Open(cfg.SessionDBPath)
	if err != nil {
		log.Error("failed to open session store: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing session store")
		sessions.Close()
	}()

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	// Upstream client and write-behind queue
	client := examapi.New(cfg.APIBaseURL, time.Duration(cfg.APITimeoutSeconds)*time.Second)
	submitPool := worker.NewPool(cfg.SubmitWorkerCount, cfg.SubmitQueueSize)
	queue := submitqueue.New(submitPool, client, cfg.SubmitMaxRetries, time.Duration(cfg.SubmitRetryBaseMs)*time.Millisecond)

	examDefaults := exam.Defaults{
		DurationSeconds:    cfg.ExamDurationSecs,
		SpeedReaderSeconds: cfg.SpeedReaderSeconds,
	}
	exams := exam.NewManager(client, queue, examDefaults)
	quizzes := quiz.NewManager(client)

	srv := &api.Server{
		Sessions:       sessions,
		AuthAPI:        client,
		ExamAPI:        client,
		QuizAPI:        client,
		FlashcardsAPI:  client,
		VideosAPI:      client,
		NotesAPI:       client,
		DashboardAPI:   client,
		Exams:          exams,
		Quizzes:        quizzes,
		Queue:          queue,
		Templates:      tmpl,
		SessionTTL:     time.Duration(cfg.SessionTTLHours) * time.Hour,
		CookieSecure:   cfg.CookieSecure,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	ctx, cancel := context.WithCancel(context.Background())
	submitPool.Start(ctx)

	// Periodically drop expired sessions.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := sessions.DeleteExpired(ctx, time.Now())
				if err != nil {
					log.Warn("session cleanup failed: %v", err)
				} else if n > 0 {
					log.Debug("deleted %d expired sessions", n)
				}
			}
		}
	}()

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping background workers")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("closing exam sessions")
	exams.Shutdown()

	log.Debug("stopping submit pool")
	submitPool.Stop()

	log.Info("===========================================")
	log.Info("LexPrep Server Stopped")
	log.Info("===========================================")
}
