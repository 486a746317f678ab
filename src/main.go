package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"

	_ "sgformer-backend/docs"
	"sgformer-backend/src/config"
	"sgformer-backend/src/controllers"
	"sgformer-backend/src/database"
	"sgformer-backend/src/jobs"
	"sgformer-backend/src/lib/sl"
	"sgformer-backend/src/metrics"
	"sgformer-backend/src/repository"
	"sgformer-backend/src/routes"
	"sgformer-backend/src/seeder"
	"sgformer-backend/src/services/auth"
	"sgformer-backend/src/services/forms"
	"sgformer-backend/src/services/notifications"
	"sgformer-backend/src/utils"
)

// @title           Event Registration API
// @version         1.0
// @description     Registration forms with seat limits, tickets and check-in.
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// เชื่อมต่อกับ MongoDB
	client, db, err := database.ConnectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("❌ Error connecting to the database: %v", err)
	}
	defer database.DisconnectMongoDB(client)

	stores, err := repository.NewMongoStores(ctx, db)
	if err != nil {
		log.Fatalf("❌ Error preparing collections: %v", err)
	}
	if n, err := repository.MigrateLegacyForms(ctx, db, logger); err != nil {
		logger.Error("legacy form migration failed", sl.Err(err))
	} else if n > 0 {
		logger.Info("legacy forms migrated", slog.Int("forms", n))
	}

	rdb, err := database.InitRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("❌ Failed to connect Redis: %v", err)
	}
	var blacklist auth.Blacklist = auth.NoopBlacklist{}
	if rdb != nil {
		defer rdb.Close()
		blacklist = auth.NewRedisBlacklist(rdb)
	} else {
		log.Println("⚠️ REDIS_URI not set. Logout revocation and email jobs are disabled.")
	}

	var verifier auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		verifier = auth.NewIDTokenVerifier(cfg.Google.ClientID)
	}
	var oauth controllers.OAuthFlow
	if cfg.Google.OAuthEnabled() {
		oauth = auth.NewGoogleOAuth(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	}
	gate := auth.NewGate(stores.Users, auth.NewTokenMaker(cfg.JWT.Secret, cfg.JWT.TTL), verifier, blacklist, logger)

	notifier, worker := startNotifications(cfg, stores, logger)
	if worker != nil {
		defer worker.Shutdown()
	}

	if admin, err := seeder.SeedAdmin(ctx, stores.Users, cfg.Admin); err != nil {
		logger.Error("admin seed failed", sl.Err(err))
	} else if admin != nil && cfg.Admin.SeedSample {
		if err := seeder.SeedSampleForms(ctx, stores, forms.NewService(stores, logger), admin); err != nil {
			logger.Error("sample form seed failed", sl.Err(err))
		}
	}

	// สร้าง app instance
	app := fiber.New(fiber.Config{
		AppName:      "sgformer-backend",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return utils.Fail(c, fe.Code, fe.Message)
			}
			return utils.HandleError(c, err)
		},
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.Origins(),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	routes.InitRoutes(app, routes.Deps{
		Stores:         stores,
		Gate:           gate,
		OAuth:          oauth,
		Notifier:       notifier,
		FrontendURL:    cfg.Google.FrontendURL,
		Log:            logger,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		RateLimit:      cfg.HTTP.RateLimit,
		RateWindow:     cfg.HTTP.RateWindow,
		Ping:           func(ctx context.Context) error { return client.Ping(ctx, nil) },
	})

	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", sl.Err(err))
		}
	}()

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + cfg.HTTP.Port)
	if err := app.Listen(":" + cfg.HTTP.Port); err != nil {
		log.Fatal(err)
	}
}

// startNotifications runs the email worker when both Redis and SMTP are
// configured. Otherwise submissions are stored without emails.
func startNotifications(cfg *config.Config, stores *repository.Stores, log *slog.Logger) (notifications.Notifier, *asynq.Server) {
	if cfg.Redis.Addr == "" || !cfg.SMTP.Enabled() {
		log.Info("email notifications disabled")
		return notifications.NoopNotifier{}, nil
	}
	sender, err := notifications.NewSMTPSender(cfg.SMTP)
	if err != nil {
		log.Error("email notifications disabled", sl.Err(err))
		return notifications.NoopNotifier{}, nil
	}

	opt := database.RedisClientOpt(cfg.Redis)
	srv := jobs.NewServer(opt, log)
	mux := asynq.NewServeMux()
	mux.Use(jobs.Logging(log))
	notifications.NewHandlers(sender, stores, cfg.Google.FrontendURL, log).Register(mux)
	if err := srv.Start(mux); err != nil {
		log.Error("asynq worker failed to start", sl.Err(err))
		return notifications.NoopNotifier{}, nil
	}
	return notifications.NewAsynqNotifier(database.InitAsynq(cfg.Redis), log), srv
}

func setupLogger(env string) *slog.Logger {
	if env == "development" || env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
