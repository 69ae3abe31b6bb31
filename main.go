package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"agrisathi/bootstrap"
	"agrisathi/configs"
	"agrisathi/database"
	_ "agrisathi/docs"
	"agrisathi/internal/advisor"
	"agrisathi/internal/middleware"
	"agrisathi/internal/repository"
	"agrisathi/internal/routes"
	"agrisathi/services"
)

func init() {
	// .env values override whatever is already in the environment
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		zlog.Fatal("mongo connect failed", zap.Error(err))
	}
	defer database.Disconnect(client)
	db := client.Database(cfg.DBName)

	if err := bootstrap.EnsureIndexes(db); err != nil {
		zlog.Fatal("ensure indexes failed", zap.Error(err))
	}

	queryRepo := repository.NewQueryRepository(db)
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	gen := advisor.New(advisor.Config{
		BaseURL: cfg.AdvisorBaseURL,
		APIKey:  cfg.AdvisorAPIKey,
		Model:   cfg.AdvisorModel,
		Timeout: cfg.AdvisorTimeout,
	}, zlog)

	deps := routes.Deps{
		Auth:    services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminSignupCode, zlog),
		Farmer:  services.NewFarmerService(queryRepo, gen, configs.MaxQueriesPerFarmer, zlog),
		Officer: services.NewOfficerService(queryRepo, zlog),
		Forum:   postRepo,
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(middleware.JWT(cfg.JWTSecret))
	routes.Register(app, deps)

	zlog.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
