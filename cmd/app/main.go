package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/advisor"
	"github.com/fasalseva/FasalSeva_Go/internal/auth"
	"github.com/fasalseva/FasalSeva_Go/internal/bootstrap"
	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/config"
	"github.com/fasalseva/FasalSeva_Go/internal/database"
	"github.com/fasalseva/FasalSeva_Go/internal/education"
	"github.com/fasalseva/FasalSeva_Go/internal/farm"
	"github.com/fasalseva/FasalSeva_Go/internal/handler"
	"github.com/fasalseva/FasalSeva_Go/internal/progression"
	"github.com/fasalseva/FasalSeva_Go/internal/scenario"
	"github.com/fasalseva/FasalSeva_Go/internal/scheduler"
	"github.com/fasalseva/FasalSeva_Go/internal/server"
	"github.com/fasalseva/FasalSeva_Go/internal/shop"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
	"github.com/fasalseva/FasalSeva_Go/internal/worker"
)

const (
	workerPoolSize  = 4
	workerQueueSize = 16

	// Expired scenarios are also swept lazily on read. The background
	// sweep keeps the table honest for users who stop logging in.
	scenarioSweepInterval = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	handler.InitValidator()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(context.Background(), dbPool); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	clk := clock.NewRealClock()
	weatherClient := weather.NewClient(cfg.NASABaseURL, cfg.NASATimeout)

	// LLM stages are optional. Heuristic and rules stages always run as
	// fallbacks, so the app degrades gracefully when Ollama is down.
	var llm advisor.Generator
	if cfg.OllamaEnabled {
		ollama := advisor.NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout)
		if err := ollama.EnsureModel(context.Background()); err != nil {
			slog.Warn("Ollama model unavailable, falling back to heuristics", "model", ollama.Model(), "error", err)
		} else {
			slog.Info("Ollama advice enabled", "model", ollama.Model())
			llm = ollama
		}
	}

	var adviceStages []advisor.Advisor
	var scenarioStages []scenario.Generator
	var contentStages []education.ContentGenerator
	if llm != nil {
		adviceStages = append(adviceStages, advisor.NewAIAdvisor(llm))
		scenarioStages = append(scenarioStages, scenario.NewAIGenerator(llm))
		contentStages = append(contentStages, education.NewAIGenerator(llm))
	}
	adviceStages = append(adviceStages, advisor.NewHeuristicAdvisor())
	scenarioStages = append(scenarioStages, scenario.NewRulesGenerator())
	contentStages = append(contentStages, education.NewStaticGenerator())

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry, clk)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authService := auth.NewService(repos.User, tokens, clk)
	farmService := farm.NewService(repos.Crop, repos.Farm, repos.CareLog, repos.User, repos.Scenario,
		repos.FarmTx, weatherClient, advisor.NewPipeline(adviceStages...), clk)
	progressionService := progression.NewService(repos.User, repos.CareLog, repos.Achievement, repos.Progress, clk)
	scenarioService := scenario.NewService(repos.Crop, repos.Scenario, repos.User, repos.Progress,
		weatherClient, scenario.NewPipeline(scenarioStages...), clk, rng)
	educationService := education.NewService(repos.Farm, repos.Crop, repos.Education, repos.User,
		weatherClient, clk, contentStages...)
	shopService := shop.NewService(repos.Shop, repos.User, clk)

	workerPool := worker.NewPool(workerPoolSize, workerQueueSize)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(scenarioSweepInterval, worker.NewScenarioExpiryJob(repos.Scenario, clk))

	srv := server.NewServer(cfg.Port, server.Deps{
		DBPool:             dbPool,
		UserRepo:           repos.User,
		Tokens:             tokens,
		Clock:              clk,
		AuthService:        authService,
		FarmService:        farmService,
		ProgressionService: progressionService,
		ScenarioService:    scenarioService,
		EducationService:   educationService,
		ShopService:        shopService,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: workerPool,
	})
}
