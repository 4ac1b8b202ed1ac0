package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/spec-kit/bloodbridge/internal/api/http/handlers"
	"github.com/spec-kit/bloodbridge/internal/observability"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as CORS, error
// handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	// The logger sits outside the error handler so it observes the status
	// actually written, envelope-rendered errors included.
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every error through the uniform
// envelope. Internal messages never reach the client.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = util.NewInternalError(nil)
			}
			if err != nil {
				domainErr := util.ToDomainError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				err = handlers.Respond(c, domainErr.HTTPStatus, domainErr.Message, nil)
			}
		}()
		return c.Next()
	}
}
