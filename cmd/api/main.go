package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/hotelops-api/docs"
	"github.com/jhoicas/hotelops-api/internal/application/auth"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/application/usecase"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/cache"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/mail"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/hotelops-api/internal/interfaces/http"
	"github.com/jhoicas/hotelops-api/pkg/config"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis si hay REDIS_URL; si no, caché del proceso (una sola instancia)
	var store ports.CacheRepository
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		store = cache.NewRedisCache(client)
	} else {
		log.Warn().Msg("REDIS_URL vacío: caché en memoria, la revocación de tokens no se comparte entre instancias")
		store = cache.NewMemoryCache()
	}

	var mailer ports.Mailer
	if cfg.Mail.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	} else {
		mailer = mail.NewLogMailer(log)
	}

	userRepo := postgres.NewUserRepository(pool)
	hotelRepo := postgres.NewHotelRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	identityRepo := postgres.NewIdentityRepository(pool)
	preferenceRepo := postgres.NewPreferenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	codeCache := hotelcache.New(store, hotelRepo, cfg.Cache.HotelCodeTTL, log)

	provisioningUC := usecase.NewProvisioningUseCase(userRepo, hotelRepo, log)
	hotelUC := usecase.NewHotelUseCase(hotelRepo, txRunner, codeCache, log)
	roomUC := usecase.NewRoomUseCase(roomRepo, codeCache, log)
	staffUC := usecase.NewStaffUseCase(identityRepo, userRepo, provisioningUC, mailer, cfg.App.PublicBaseURL, log)
	preferenceUC := usecase.NewPreferenceUseCase(preferenceRepo, codeCache)
	authUC := auth.NewAuthUseCase(auth.Repos{
		Identities: identityRepo,
		Users:      userRepo,
		Hotels:     hotelRepo,
		Rooms:      roomRepo,
	}, provisioningUC, mailer, store, auth.JWTConfig{
		Secret:        cfg.JWT.Secret,
		ExpMinutes:    cfg.JWT.Expiration,
		LinkTTL:       cfg.JWT.LinkTTL,
		Issuer:        cfg.JWT.Issuer,
		PublicBaseURL: cfg.App.PublicBaseURL,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.DocsPath,
		Path:     "docs",
		Title:    "HotelOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProvisioningUC:  provisioningUC,
		HotelUC:         hotelUC,
		RoomUC:          roomUC,
		StaffUC:         staffUC,
		PreferenceUC:    preferenceUC,
		Logger:          log,
		AllowOrigins:    cfg.HTTP.AllowOrigin,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		WebhookSecret:   cfg.Functions.WebhookSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
