package app

import (
	"goalboard/internal/app/board"
	"goalboard/internal/app/bot"
	"goalboard/internal/app/category"
	"goalboard/internal/app/comment"
	"goalboard/internal/app/core"
	"goalboard/internal/app/goal"
	"goalboard/internal/app/health"
	"goalboard/internal/app/session"
	"goalboard/internal/config"
	"goalboard/internal/db"
	"goalboard/internal/db/seeder"
	"goalboard/internal/middleware"
	"goalboard/internal/providers/redis"
	"goalboard/internal/router"
	"goalboard/internal/utils"

	_ "goalboard/docs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router   *router.Router
	DB       *gorm.DB
	eventBus *utils.EventBus
	botW     *bot.Worker
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	if cfg.Env == "dev" {
		seed := seeder.NewSeeder(dbConn, logger)
		if err := seed.Seed(); err != nil {
			logger.Warn("Failed to run seeders", zap.Error(err))
		}
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	eventBus := utils.NewEventBus()

	sessionRepo := session.NewRepository(dbConn)
	coreRepo := core.NewRepository(dbConn)
	boardRepo := board.NewRepository(dbConn)
	categoryRepo := category.NewRepository(dbConn)
	goalRepo := goal.NewRepository(dbConn)
	commentRepo := comment.NewRepository(dbConn)
	botRepo := bot.NewRepository(dbConn)

	sessionService := session.NewService(sessionRepo, redisProvider, cfg.SessionTTL)
	coreService := core.NewService(coreRepo, logger)
	boardService := board.NewService(boardRepo, redisProvider, logger)
	categoryService := category.NewService(categoryRepo, boardService, logger)
	goalService := goal.NewService(goalRepo, categoryService, boardService, eventBus, logger)
	commentService := comment.NewService(commentRepo, goalService, boardService, eventBus, logger)
	botService := bot.NewService(botRepo, eventBus, logger)

	var botWorker *bot.Worker
	if cfg.TelegramToken != "" {
		botWorker, err = bot.NewWorker(cfg.TelegramToken, botService, goalService, eventBus, logger)
		if err != nil {
			logger.Warn("Failed to initialize Telegram bot, continuing without it", zap.Error(err))
			botWorker = nil
		} else {
			go botWorker.Run()
		}
	}
	go eventBus.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	coreHandler := core.NewHandler(coreService, sessionService, cfg.SessionTTL, logger)
	boardHandler := board.NewHandler(boardService, logger)
	categoryHandler := category.NewHandler(categoryService, logger)
	goalHandler := goal.NewHandler(goalService, logger)
	commentHandler := comment.NewHandler(commentService, logger)
	botHandler := bot.NewHandler(botService, logger)

	r := router.NewRouter(logger, middleware.RequireAuth(sessionService))

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterCoreRoutes(coreHandler)
	r.RegisterBoardRoutes(boardHandler)
	r.RegisterCategoryRoutes(categoryHandler)
	r.RegisterGoalRoutes(goalHandler)
	r.RegisterCommentRoutes(commentHandler)
	r.RegisterBotRoutes(botHandler)
	r.RegisterSwaggerRoutes()

	return &Application{
		Router:   r,
		DB:       dbConn,
		eventBus: eventBus,
		botW:     botWorker,
	}, nil
}

// Shutdown stops background consumers. The HTTP server is shut down by
// the caller.
func (a *Application) Shutdown() {
	if a.botW != nil {
		a.botW.Stop()
	}
	a.eventBus.Stop()
}
