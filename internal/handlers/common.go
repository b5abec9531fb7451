// common.go
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

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/starwars-api/internal/metrics"
	"github.com/localnerve/starwars-api/internal/services"
	"github.com/localnerve/starwars-api/internal/types"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler carries the dependencies shared by every route handler
type Handler struct {
	DB         *gorm.DB
	Metrics    *metrics.Metrics
	Log        *logrus.Logger
	BcryptCost int
}

// parseID reads a positive record id from the route parameter name
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := types.ParseID(c.Params(name))
	if err != nil {
		return 0, types.BadRequest("Invalid " + name)
	}
	return id, nil
}

// parseUserIDQuery reads the required user_id query parameter
func parseUserIDQuery(c *fiber.Ctx) (uint, error) {
	raw := c.Query("user_id")
	if raw == "" {
		return 0, types.BadRequest("user_id query parameter is required")
	}
	id, err := types.ParseID(raw)
	if err != nil {
		return 0, types.BadRequest("Invalid user_id")
	}
	return id, nil
}

// parsePage reads the optional page and limit query parameters
func parsePage(c *fiber.Ctx) (services.Page, error) {
	var page services.Page

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > services.MaxPageLimit {
			return page, types.BadRequest("limit must be between 1 and " + strconv.Itoa(services.MaxPageLimit))
		}
		page.Limit = limit
	}
	if raw := c.Query("page"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil || number < 1 {
			return page, types.BadRequest("page must be a positive integer")
		}
		page.Number = number
	}

	return page, nil
}

// parseBody decodes the JSON request body into dest regardless of the Content-Type header
func parseBody(c *fiber.Ctx, dest interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return types.BadRequest("Invalid input")
	}
	if err := c.App().Config().JSONDecoder(body, dest); err != nil {
		return types.BadRequest("Invalid input").WithPayload(map[string]interface{}{"detail": err.Error()})
	}
	return nil
}

// observe counts 404 answers for entity before handing err back to the error handler
func (h *Handler) observe(entity string, err error) error {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		h.Metrics.Missing(entity)
	}
	return err
}
