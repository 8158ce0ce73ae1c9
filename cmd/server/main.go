package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/priyankan19/oerhub/internal/config"
	"github.com/priyankan19/oerhub/internal/domain/fiber/handler"
	"github.com/priyankan19/oerhub/internal/logging"
	"github.com/priyankan19/oerhub/internal/middleware"
	"github.com/priyankan19/oerhub/internal/model"
	"github.com/priyankan19/oerhub/internal/pipeline"
	"github.com/priyankan19/oerhub/internal/repository"
	"github.com/priyankan19/oerhub/internal/service"
	"github.com/priyankan19/oerhub/internal/syllabus"
	"github.com/priyankan19/oerhub/internal/usecase"
	"github.com/priyankan19/oerhub/internal/util"
	"github.com/priyankan19/oerhub/internal/worker"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	logger := logging.New("oerhub")

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 120 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB(logger)

	pool := worker.NewPool(appConfig.Workers, logger)
	go pool.Observe()

	creds := service.NewFileCredentialProvider(config.LoadDriveConfig().TokenFile)
	store, err := service.NewDriveService(ctx, creds)
	if err != nil {
		logger.Fatal().Err(err).Msg("cloud store unavailable")
	}
	folders := service.NewFolderResolver(store, config.LoadDriveConfig().RootFolder)

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("gemini client unavailable")
	}

	var summarizer service.SummaryProvider = gemini
	if appConfig.SummaryProvider == "openrouter" {
		summarizer = service.NewOpenRouterService()
	}
	logger.Info().Str("provider", appConfig.SummaryProvider).Msg("summary provider selected")

	pipe := pipeline.New(pipeline.ReaderFunc(util.ReadPDF), summarizer, service.NewWhisperService(), logger)
	mailer := service.NewMailService()

	submissionRepo := repository.NewSubmissionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	forumRepo := repository.NewForumRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, catalogRepo, store, folders, pipe, pool, mailer, logger)
	contentUC := usecase.NewContentUsecase(store, folders, service.NewPDFGenService(), logger)
	forumUC := usecase.NewForumUsecase(forumRepo, gemini, logger)

	handler.NewSubmissionHandler(submissionUC, assessmentRepo).RegisterRoutes(app)
	handler.NewContentHandler(contentUC).RegisterRoutes(app)
	handler.NewForumHandler(forumUC, gemini).RegisterRoutes(app)
	handler.NewCatalogHandler(catalogRepo).RegisterRoutes(app)
	handler.NewSyllabusHandler(func(semester int, year string) *syllabus.Importer {
		return syllabus.NewImporter(db, semester, year, logger)
	}).RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	logger.Info().Str("port", appConfig.Port).Msg("server running")
	if err := app.Listen(appConfig.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}

	// Let queued enrichment and mail tasks drain before exit.
	pool.Stop()
}

func ConnectDB(logger zerolog.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to database")
	}
	pgDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not get database instance")
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// Question embeddings need pgvector before migration runs.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		logger.Fatal().Err(err).Msg("could not enable pgvector extension")
	}

	err = db.AutoMigrate(
		&model.Program{},
		&model.Department{},
		&model.Scheme{},
		&model.Course{},
		&model.Chapter{},
		&model.CourseOutcome{},
		&model.UploadCheck{},
		&model.ContentCheck{},
		&model.Assessment{},
		&model.Question{},
		&model.Option{},
		&model.ForumTopic{},
		&model.ForumQuestion{},
		&model.ForumAnswer{},
		&model.ForumVote{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	return db
}
