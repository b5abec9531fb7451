// server.go
//
// A Star Wars favorites REST service backed by GORM
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of starwars-api.
// starwars-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// starwars-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with starwars-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package server

import (
	"errors"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/localnerve/starwars-api/internal/config"
	"github.com/localnerve/starwars-api/internal/handlers"
	"github.com/localnerve/starwars-api/internal/metrics"
	"github.com/localnerve/starwars-api/internal/middleware"
	"github.com/localnerve/starwars-api/internal/services"
	"github.com/localnerve/starwars-api/internal/types"
	"github.com/localnerve/starwars-api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "github.com/localnerve/starwars-api/docs/api" // Swagger docs
)

const (
	// APIVersion is reported in the X-Api-Version response header
	APIVersion = "1.0.0"
	// ShutdownTimeout bounds how long in-flight requests may run after a shutdown signal
	ShutdownTimeout = 10 * time.Second
)

// Server is a configured fiber app together with the metrics it exports
type Server struct {
	App     *fiber.App
	Metrics *metrics.Metrics
}

// New builds the HTTP application: middleware, routes, metrics and error handling
func New(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *Server {
	m := metrics.New()

	app := fiber.New(fiber.Config{
		AppName:               "starwars-api",
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: log.IsLevelEnabled(logrus.DebugLevel)}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if cfg.LogFormat == "json" {
		app.Use(middleware.AccessLog(log))
	} else {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: log.Out,
		}))
	}
	app.Use(helmet.New(helmet.Config{
		// Swagger UI loads inline scripts and styles
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(compress.New())
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return utils.ErrorResponse(c, "Too many requests", fiber.StatusTooManyRequests, "rate_limit")
			},
		}))
	}

	// Prometheus metrics share the domain counters' registry
	prometheus := fiberprometheus.NewWithRegistry(m.Registry, "starwars-api", "http", "", nil)
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(middleware.VersionMiddleware(APIVersion))

	Routes(app, &handlers.Handler{
		DB:         db,
		Metrics:    m,
		Log:        log,
		BcryptCost: cfg.BcryptCost,
	})

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return &Server{App: app, Metrics: m}
}

// Routes mounts the API routes on router
func Routes(router fiber.Router, h *handlers.Handler) {
	router.Get("/", handlers.Sitemap)

	users := &handlers.UserHandler{Handler: h}
	router.Get("/users", users.ListUsers)
	router.Post("/users", users.CreateUser)
	// Registered ahead of /users/:id so "favorites" is not read as an id
	router.Get("/users/favorites", users.GetUserFavorites)
	router.Get("/users/:id", users.GetUser)
	router.Put("/users/:id", users.UpdateUser)
	router.Patch("/users/:id", users.UpdateUser)
	router.Delete("/users/:id", users.DeleteUser)

	handlers.NewCatalogHandler(h, services.Addresses, "addresses").Register(router, "/addresses")
	handlers.NewCatalogHandler(h, services.Planets, "planets").Register(router, "/planets")
	handlers.NewCatalogHandler(h, services.Characters, "characters").Register(router, "/characters")
	handlers.NewCatalogHandler(h, services.Characters, "people").Register(router, "/people")
	handlers.NewCatalogHandler(h, services.Vehicles, "vehicles").Register(router, "/vehicles")

	favorites := &handlers.FavoriteHandler{Handler: h}
	router.Get("/favorite-lists", favorites.ListFavoriteLists)
	router.Post("/favorite-lists", favorites.CreateFavoriteLists)
	router.Get("/favorite-lists/:id", favorites.GetFavoriteList)
	router.Delete("/favorite-lists/:id", favorites.DeleteFavoriteList)
	router.Post("/favorite/:kind/:id", favorites.AddFavorite)
	router.Delete("/favorite/:kind/:id", favorites.RemoveFavorite)
}

// ErrorHandler renders every error returned by a handler as the JSON error envelope
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()
		errorType := "unknown"
		var payload map[string]interface{}

		var apiErr *types.APIError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &apiErr):
			code = apiErr.StatusCode
			message = apiErr.Message
			errorType = apiErr.Type
			payload = apiErr.Payload
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
			errorType = "http"
		}

		if code >= fiber.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"request_id": c.Locals(requestid.ConfigDefault.ContextKey),
				"url":        c.OriginalURL(),
			}).WithError(err).Error("Request failed")
			// Internal details stay in the log
			if apiErr == nil && fiberErr == nil {
				message = "Internal Server Error"
			}
		}

		return utils.ErrorResponseWithPayload(c, message, code, errorType, payload)
	}
}
