package server

import (
	"errors"
	"time"

	"github.com/ivancepe/Production-Trial/internal/config"
	"github.com/ivancepe/Production-Trial/internal/logging"
	"github.com/ivancepe/Production-Trial/internal/productionlog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const internalErrorMessage = "Internal Server Error"

// New builds the API. db is the process-wide handle opened in main.
func New(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "production-log",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Get("/healthz", healthHandler(db))

	repo := productionlog.NewRepository(db)
	productionlog.Register(app.Group("/api"), repo)
	productionlog.Register(app, repo)

	return app
}

// errorHandler maps handler errors to {"message": ...} bodies. Store and
// unexpected errors are logged and answered with a generic 500.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *productionlog.ValidationError
		if errors.As(err, &verr) {
			log.WithFields(logrus.Fields{"path": c.Path(), "fields": verr.Fields}).Debug(verr.Message)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": verr.Message})
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(fiber.Map{"message": ferr.Message})
		}

		var serr *productionlog.StoreError
		if errors.As(err, &serr) {
			logging.LogError(log, "productionlog", serr.Op, c.Method()+" "+c.Path(), nil, serr.Err)
		} else {
			logging.LogError(log, "server", "errorHandler", c.Method()+" "+c.Path(), nil, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": internalErrorMessage})
	}
}

func requestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
		}).Info("request")
		return nil
	}
}

// GET /healthz
func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
