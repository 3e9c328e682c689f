package routes

import (
	"careerlink/internal/delivery/http/handler"
	"careerlink/internal/delivery/http/middleware"
	"careerlink/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything the route table mounts.
type Handlers struct {
	Health       *handler.HealthHandler
	Skills       *handler.SkillHandler
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Company      *handler.CompanyHandler
	Admin        *handler.AdminHandler
	Notification *handler.NotificationHandler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.handlers.Health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	r.handlers.Skills.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api.Group("/auth"))

	student := api.Group("/student", r.auth.Middleware(), middleware.RequireRoles(user.RoleStudent))
	r.handlers.Student.RegisterRoutes(student)
	r.handlers.Notification.RegisterRoutes(student)

	company := api.Group("/company", r.auth.Middleware(), middleware.RequireRoles(user.RoleCompany))
	r.handlers.Company.RegisterRoutes(company)
	r.handlers.Notification.RegisterRoutes(company)

	admin := api.Group("/admin", r.auth.Middleware(), middleware.RequireRoles(user.RoleAdmin))
	r.handlers.Admin.RegisterRoutes(admin)

	api.Use(notFound)
}

func notFound(c fiber.Ctx) error {
	return middleware.NewAppError(fiber.StatusNotFound, "API route not found", nil, nil)
}
