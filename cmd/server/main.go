package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/config"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/database"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/evaluator"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/handler"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/logger"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/questionbank"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/repository"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/router"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/service"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/summary"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/validator"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Excel AI Interviewer")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Load Question Bank ────────────────────────────────────────────
	// The bank is validated BEFORE accepting traffic: a malformed file must
	// never surface mid-interview.
	bank, err := questionbank.LoadFile(cfg.QuestionFile)
	if err != nil {
		if errors.Is(err, questionbank.ErrSchema) {
			log.Fatal().Err(err).Str("file", cfg.QuestionFile).Msg("Question file is malformed")
		}
		log.Fatal().Err(err).Str("file", cfg.QuestionFile).Msg("Failed to load question file")
	}
	log.Info().Int("questions", bank.Len()).Str("file", cfg.QuestionFile).Msg("Question bank loaded")

	// ─── Select Evaluator ──────────────────────────────────────────────
	var eval evaluator.Evaluator
	switch cfg.Evaluator {
	case "binary":
		eval = evaluator.NewBinary()
	case "llm":
		eval = evaluator.NewLLMJudge(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		eval = evaluator.NewSimilarity()
	}
	log.Info().Str("evaluator", cfg.Evaluator).Msg("Answer evaluator selected")

	// ─── Initialize Repositories ───────────────────────────────────────
	recordRepo := repository.NewCandidateRecordRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	tokenService := service.NewTokenService(cfg)
	resultService := service.NewResultService(recordRepo, summary.NewBuilder(cfg.PassThreshold), rdb, cfg, log)
	interviewService := service.NewInterviewService(bank, eval, recordRepo, resultService, rdb, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Interview: handler.NewInterviewHandler(interviewService, tokenService),
		Admin:     handler.NewAdminHandler(resultService),
		WS:        handler.NewWSHandler(interviewService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	reportWorker := worker.NewReportWorker(rdb, cfg.ReportDir, log)
	go reportWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(tokenService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the report worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
