// favorites.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/starwars-api/internal/models"
	"github.com/localnerve/starwars-api/internal/services"
	"github.com/localnerve/starwars-api/internal/types"
	"github.com/localnerve/starwars-api/internal/utils"
)

// FavoriteHandler handles favorite list routes
type FavoriteHandler struct {
	*Handler
}

// favoriteKinds maps the :kind route segment onto the favorite target
var favoriteKinds = map[string]models.FavoriteKind{
	"planet":    models.FavoritePlanet,
	"people":    models.FavoriteCharacter,
	"character": models.FavoriteCharacter,
	"vehicle":   models.FavoriteVehicle,
}

func parseKind(c *fiber.Ctx) (models.FavoriteKind, error) {
	kind, ok := favoriteKinds[c.Params("kind")]
	if !ok {
		return "", types.NotFound("Unknown favorite kind: " + c.Params("kind"))
	}
	return kind, nil
}

// ListFavoriteLists handles GET /favorite-lists
// @Summary List favorite list rows
// @Tags Favorites
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} map[string][]models.FavoriteList
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /favorite-lists [get]
func (h *FavoriteHandler) ListFavoriteLists(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	favorites, err := services.ListFavoriteLists(h.DB, page)
	if err != nil {
		return err
	}
	return utils.ListResponse(c, "favorite_lists", favorites)
}

// GetFavoriteList handles GET /favorite-lists/:id
// @Summary Get a favorite list row
// @Tags Favorites
// @Produce json
// @Param id path int true "Favorite list ID"
// @Success 200 {object} models.FavoriteList
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /favorite-lists/{id} [get]
func (h *FavoriteHandler) GetFavoriteList(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	favorite, err := services.GetFavoriteList(h.DB, id)
	if err != nil {
		return h.observe("favorite_list", err)
	}
	return c.JSON(favorite)
}

// CreateFavoriteLists handles POST /favorite-lists
// @Summary Create favorite list rows
// @Description Accepts a single object or an array. Ids may be numbers or numeric strings.
// @Tags Favorites
// @Accept json
// @Produce json
// @Param body body services.FavoriteInput true "Favorite row, or an array of them"
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /favorite-lists [post]
func (h *FavoriteHandler) CreateFavoriteLists(c *fiber.Ctx) error {
	var body types.FlexList[services.FavoriteInput]
	if err := parseBody(c, &body); err != nil {
		return err
	}

	favorites, err := services.CreateFavoriteLists(h.DB, body.Slice())
	if err != nil {
		return h.observe("favorite_list", err)
	}
	for _, favorite := range favorites {
		h.countFavorite(favorite)
	}

	if body.Batch {
		return utils.MessageResponse(c, fiber.StatusCreated, "Favorite lists created successfully", "favorite_lists", favorites)
	}
	return utils.MessageResponse(c, fiber.StatusCreated, "Favorite list created successfully", "favorite_list", favorites[0])
}

// DeleteFavoriteList handles DELETE /favorite-lists/:id
// @Summary Delete a favorite list row
// @Tags Favorites
// @Produce json
// @Param id path int true "Favorite list ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /favorite-lists/{id} [delete]
func (h *FavoriteHandler) DeleteFavoriteList(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteFavoriteList(h.DB, id); err != nil {
		return h.observe("favorite_list", err)
	}
	h.Metrics.Deleted("favorite_list")

	return utils.MessageResponse(c, fiber.StatusOK, "Favorite list deleted successfully", "", nil)
}

// AddFavorite handles POST /favorite/:kind/:id?user_id=
// @Summary Mark an entity as a favorite of a user
// @Tags Favorites
// @Produce json
// @Param kind path string true "planet, people or vehicle"
// @Param id path int true "Entity ID"
// @Param user_id query int true "User ID"
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /favorite/{kind}/{id} [post]
func (h *FavoriteHandler) AddFavorite(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}

	favorite, err := services.AddFavorite(h.DB, userID, kind, targetID)
	if err != nil {
		return h.observe(string(kind), err)
	}
	h.countFavorite(*favorite)

	return utils.MessageResponse(c, fiber.StatusCreated, "Favorite list created successfully", "favorite_list", favorite)
}

// RemoveFavorite handles DELETE /favorite/:kind/:id?user_id=
// @Summary Remove an entity from a user's favorites
// @Description Removes every favorite row of the user pointing at the entity
// @Tags Favorites
// @Produce json
// @Param kind path string true "planet, people or vehicle"
// @Param id path int true "Entity ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /favorite/{kind}/{id} [delete]
func (h *FavoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}

	deleted, err := services.RemoveFavorite(h.DB, userID, kind, targetID)
	if err != nil {
		return h.observe("favorite", err)
	}
	h.Metrics.Deleted("favorite_list")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Favorite deleted successfully",
		"deleted": deleted,
	})
}

func (h *FavoriteHandler) countFavorite(favorite models.FavoriteList) {
	switch {
	case favorite.PlanetID != nil:
		h.Metrics.Favorite(string(models.FavoritePlanet))
	case favorite.CharacterID != nil:
		h.Metrics.Favorite(string(models.FavoriteCharacter))
	case favorite.VehicleID != nil:
		h.Metrics.Favorite(string(models.FavoriteVehicle))
	}
}
