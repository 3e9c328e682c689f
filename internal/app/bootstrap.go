package app

import (
	"fmt"
	"log/slog"
	"strings"

	"careerlink/internal/config"
	"careerlink/internal/delivery/http/handler"
	"careerlink/internal/delivery/http/middleware"
	"careerlink/internal/delivery/http/routes"
	"careerlink/internal/infrastructure/storage"
	"careerlink/internal/pkg/validator"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/static"
)

// multipart bodies carry uploads up to the storage limit plus form overhead
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		BodyLimit:       bodyLimit(cfg.Upload),
		StructValidator: validator.New(),
	})

	registerGlobalMiddleware(f, c.Logger)
	registerStatic(f, c.Storage)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// releases the container.
func Bootstrap(cfg config.Config, logger *slog.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *slog.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New())
}

func registerStatic(app *fiber.App, files *storage.Local) {
	if app == nil || files == nil {
		return
	}
	app.Get(strings.TrimSuffix(storage.PublicPrefix, "/")+"*", static.New(files.Root()))
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	h := routes.Handlers{
		Health:       handler.NewHealthHandler(c.DB, c.Cache),
		Skills:       handler.NewSkillHandler(),
		Auth:         handler.NewAuthHandler(c.Auth, middleware.LoginRateLimiter(c.Config.App.LoginRateLimit)),
		Student:      handler.NewStudentHandler(c.StudentProf, c.StudentJobs, c.Storage, c.Logger),
		Company:      handler.NewCompanyHandler(c.Company, c.Review, c.Storage, c.Logger),
		Admin:        handler.NewAdminHandler(c.Admin),
		Notification: handler.NewNotificationHandler(c.Notifications),
	}
	routes.NewRegistry(h, middleware.NewAuthMiddleware(c.Auth)).Register(app)
}

func bodyLimit(cfg config.UploadConfig) int {
	limit := cfg.MaxBytes
	if limit <= 0 {
		limit = 5 * 1024 * 1024
	}
	return int(limit) + bodyLimitSlack
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
