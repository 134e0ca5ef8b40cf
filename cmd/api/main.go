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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"launchpath/internal/catalog"
	"launchpath/internal/config"
	"launchpath/internal/db"
	apihttp "launchpath/internal/http"
	"launchpath/internal/metrics"
	"launchpath/internal/repository"
	"launchpath/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory stores", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, cfg.LoginRateWindow(), cfg.LoginRateMax)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewMemoryLoginRateLimiter(cfg.LoginRateWindow(), cfg.LoginRateMax)
	}

	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL(), tokenStore)

	var metricsHandler http.Handler
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		logger.Fatal("metrics", zap.Error(err))
	}
	if cfg.MetricsEnabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	userRepo := repository.NewPgUserRepository(pool)
	stateRepo := repository.NewPgUserStateRepository(pool)
	commitmentRepo := repository.NewPgCommitmentRepository(pool)
	checkInRepo := repository.NewPgCheckInRepository(pool)
	chapterRepo := repository.NewPgChapterRepository(pool)
	milestoneRepo := repository.NewPgMilestoneRepository(pool)
	financeRepo := repository.NewPgFinanceRepository(pool)
	profileRepo := repository.NewPgBusinessProfileRepository(pool)
	outcomeRepo := repository.NewPgSessionOutcomeRepository(pool)

	engine := service.NewDecisionEngine(cat, nil)
	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	evaluationSvc := service.NewEvaluationService(logger, engine, stateRepo, m, cfg.ViableFitThreshold)
	journeySvc := service.NewJourneyService(logger, engine, stateRepo, m, cfg.ViableFitThreshold, cfg.CommitmentWindow())
	checkInSvc := service.NewCheckInService(logger, engine, stateRepo, commitmentRepo, checkInRepo, m, cfg.CommitmentWindow())
	dashboardSvc := service.NewDashboardService(logger, engine, stateRepo, commitmentRepo, checkInRepo, profileRepo, outcomeRepo)
	chapterSvc := service.NewChapterService(logger, engine, stateRepo, chapterRepo)
	milestoneSvc := service.NewMilestoneService(engine, stateRepo, milestoneRepo)
	financeSvc := service.NewFinanceService(financeRepo)
	profileSvc := service.NewProfileService(logger, profileRepo)

	router := apihttp.NewRouter(logger, m, metricsHandler, jwtSvc, apihttp.Handlers{
		Users:    apihttp.NewUserHandler(logger, userSvc, jwtSvc),
		Paths:    apihttp.NewPathHandler(logger, engine, milestoneSvc, cfg.ViableFitThreshold),
		Journey:  apihttp.NewJourneyHandler(logger, journeySvc, evaluationSvc),
		CheckIns: apihttp.NewCheckInHandler(logger, checkInSvc, dashboardSvc),
		Progress: apihttp.NewProgressHandler(logger, chapterSvc, milestoneSvc),
		Finances: apihttp.NewFinanceHandler(logger, financeSvc),
		Profiles: apihttp.NewProfileHandler(logger, profileSvc),
		DB:       pool,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
