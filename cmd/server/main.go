package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/config"
	"github.com/fadilmartias/fairfound-coach/internal/domain/fiber/handler"
	"github.com/fadilmartias/fairfound-coach/internal/gateway"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/middleware"
	"github.com/fadilmartias/fairfound-coach/internal/model"
	"github.com/fadilmartias/fairfound-coach/internal/notify"
	"github.com/fadilmartias/fairfound-coach/internal/pipeline"
	"github.com/fadilmartias/fairfound-coach/internal/repository"
	"github.com/fadilmartias/fairfound-coach/internal/service"
	"github.com/fadilmartias/fairfound-coach/internal/usecase"
	"github.com/fadilmartias/fairfound-coach/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	envErr := godotenv.Load()

	appConfig := config.LoadAppConfig()
	log := logger.New(appConfig.LogLevel, appConfig.LogFormat).With(logger.Fields{"app": appConfig.Name})
	if envErr != nil {
		log.Debug("no .env file loaded", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	opts := service.OptionsFromConfig(config.LoadGeminiConfig(), config.LoadOpenRouterConfig())
	gen, embedder, err := service.SelectProvider(ctx, opts, log)
	if err != nil {
		log.WithError(err).Error("could not configure AI provider", nil)
		os.Exit(1)
	}
	gw := gateway.New(gen, log)

	var (
		sessions pipeline.Store
		mentors  usecase.MentorStore
		mentees  usecase.MenteeStore
	)
	if config.LoadDBConfig().Enabled() {
		db, err := ConnectDB(log)
		if err != nil {
			log.WithError(err).Error("could not connect to database", nil)
			os.Exit(1)
		}
		sessions = repository.NewSessionRepository(db)
		mentors = repository.NewMentorRepository(db)
		mentees = repository.NewMenteeRepository(db)
	} else {
		log.Warn("DB_HOST not set, keeping sessions and mentees in memory", nil)
		sessions = pipeline.NewMemoryStore()
		mentors = repository.NewMemoryMentorRepository()
		mentees = repository.NewMemoryMenteeRepository()
	}
	connections := ConnectConnectionLog(ctx, log)

	inbox := notify.NewInbox(log)
	orchestrator := pipeline.NewOrchestrator(gw, sessions, inbox, log)
	coaching := usecase.NewCoachingUsecase(orchestrator, gw, inbox, log)
	mentorUC := usecase.NewMentorUsecase(mentors, mentees, connections, gw, embedder, log)

	seedCtx, cancelSeed := context.WithTimeout(ctx, 2*time.Minute)
	if err := mentorUC.Seed(seedCtx); err != nil {
		log.WithError(err).Warn("seeding marketplace failed", nil)
	}
	cancelSeed()

	handler.NewSessionHandler(coaching).RegisterRoutes(app)
	handler.NewMentorHandler(mentorUC, coaching).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("runtime stats", logger.Fields{"goroutines": runtime.NumGoroutine()})
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Info("shutting down", nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown failed", nil)
		}
	}()

	log.Info("server running", logger.Fields{"port": appConfig.Port, "online": gw.Online()})
	if err := app.Listen(appConfig.Port); err != nil {
		log.WithError(err).Error("server stopped", nil)
		os.Exit(1)
	}
}

func ConnectDB(log logger.Logger) (*gorm.DB, error) {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	gormLog := gormlogger.Default.LogMode(gormlogger.Warn)
	if appConfig.IsProduction() {
		gormLog = gormlogger.Default.LogMode(gormlogger.Error)
	}
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	pgDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	pgDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	pgDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.WithError(err).Warn("could not enable pgvector extension", nil)
	}
	if err := db.AutoMigrate(&model.SessionRecord{}, &model.Mentor{}, &model.Mentee{}, &model.Task{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// ConnectConnectionLog uses Redis when reachable and an in-memory log otherwise.
func ConnectConnectionLog(ctx context.Context, log logger.Logger) repository.ConnectionLog {
	redisConfig := config.LoadRedisConfig()
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Address,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("redis unavailable, connection log kept in memory", logger.Fields{"addr": redisConfig.Address})
		_ = client.Close()
		return repository.NewMemoryConnectionLog()
	}
	return repository.NewRedisConnectionLog(client)
}
