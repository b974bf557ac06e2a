package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	Validator *validation.Validator
	JWTSecret string
}

// NewApp construye la app Fiber con el ErrorHandler y los middlewares comunes.
func NewApp(log *logger.Logger, appName string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: NewErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(AccessLog(log))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	api.Post("/login_check", authHandler.Login)

	// Products (público)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/", productHandler.Edit)
	products.Get("/:id<int>", productHandler.GetByID)
	products.Delete("/:id<int>", productHandler.Delete)

	// Users (Bearer Token + ROLE_ADMIN o ROLE_SUPER_ADMIN)
	users := api.Group("/users",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin),
	)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id<int>", userHandler.GetByID)
	users.Put("/:id<int>", userHandler.Update)
	users.Delete("/:id<int>", userHandler.Delete)
}
