package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos repository.Repositories
		uow   repository.UnitOfWork
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		repos = repository.Repositories{Products: store.Products(), Users: store.Users(), Clients: store.Clients()}
		uow = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.AutoMigrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		repos = postgres.Repositories(pool)
		uow = postgres.NewTxRunner(pool)
	}

	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	v := validation.New()

	boot, err := auth.NewBootstrapper(uow, hasher).Run(ctx, auth.BootstrapInput{
		ClientName:         cfg.Bootstrap.ClientName,
		SuperAdminUser:     cfg.Bootstrap.SuperAdminUser,
		SuperAdminPassword: cfg.Bootstrap.SuperAdminPassword,
		SuperAdminEmail:    cfg.Bootstrap.SuperAdminEmail,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("datos iniciales")
	}
	if boot.ClientCreated || boot.SuperAdminCreated {
		log.Info().
			Int64("client_id", boot.ClientID).
			Bool("client_created", boot.ClientCreated).
			Bool("super_admin_created", boot.SuperAdminCreated).
			Msg("datos iniciales creados")
	}

	productUC := usecase.NewProductUseCase(repos.Products, uow, v, cfg.Pagination.PageSize)
	userUC := usecase.NewUserUseCase(repos.Users, uow, v, hasher, cfg.Pagination.PageSize)
	authUC := auth.NewAuthUseCase(repos.Users, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(log, cfg.App.Name)

	// Swagger UI: http://localhost:<port>/docs (solo si existe el swagger.json generado)
	if _, err := os.Stat(cfg.Docs.Path); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.Path,
			Path:     "docs",
			Title:    "Catálogo API",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.Path).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		UserUC:    userUC,
		AuthUC:    authUC,
		Validator: v,
		JWTSecret: cfg.JWT.Secret,
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
