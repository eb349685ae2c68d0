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
	"github.com/jcolmenar/colavirtual-api/internal/application/auth"
	"github.com/jcolmenar/colavirtual-api/internal/application/cola"
	"github.com/jcolmenar/colavirtual-api/internal/application/usecase"
	"github.com/jcolmenar/colavirtual-api/internal/infrastructure/postgres"
	infraredis "github.com/jcolmenar/colavirtual-api/internal/infrastructure/redis"
	"github.com/jcolmenar/colavirtual-api/internal/infrastructure/tasks"
	httpRouter "github.com/jcolmenar/colavirtual-api/internal/interfaces/http"
	"github.com/jcolmenar/colavirtual-api/pkg/config"
	"github.com/jcolmenar/colavirtual-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB, "file://migrations"); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	establecimientoRepo := postgres.NewEstablecimientoRepository(pool)
	favoritoRepo := postgres.NewFavoritoRepository(pool)
	colaRepo := postgres.NewColaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Publicador de paso de turno. Redis es opcional: sin REDIS_ADDR la API
	// funciona igual y simplemente no emite el evento.
	var turnoPublisher cola.TurnoPublisher
	if cfg.Redis.Addr != "" {
		redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		turnoPublisher = infraredis.NewTurnoPublisher(redisClient)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	establecimientoUC := usecase.NewEstablecimientoUseCase(establecimientoRepo)
	favoritoUC := usecase.NewFavoritoUseCase(favoritoRepo, establecimientoRepo)
	gate := cola.NewPolicyGate(establecimientoRepo)
	colaUC := cola.NewColaUseCase(colaRepo, gate, turnoPublisher, log)

	purga := tasks.NewPurga(txRunner, cfg.Cola.RetencionDias, log)
	if err := purga.Start(); err != nil {
		log.Fatal().Err(err).Msg("planificador de purga")
	}
	defer purga.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ColaVirtual API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		EstablecimientoUC: establecimientoUC,
		FavoritoUC:        favoritoUC,
		ColaUC:            colaUC,
		JWTSecret:         cfg.JWT.Secret,
		InvitadoRPS:       cfg.Cola.InvitadoRPS,
		InvitadoBurst:     cfg.Cola.InvitadoBurst,
		Log:               log,
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
