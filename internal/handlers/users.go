package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/starwars-api/internal/services"
	"github.com/localnerve/starwars-api/internal/utils"
)

// UserHandler handles user routes
type UserHandler struct {
	*Handler
}

// ListUsers handles GET /users
// @Summary List users
// @Description List users ordered by id
// @Tags Users
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} map[string][]models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	users, err := services.ListUsers(h.DB, page)
	if err != nil {
		return err
	}
	return utils.ListResponse(c, "users", users)
}

// GetUser handles GET /users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := services.GetUser(h.DB, id)
	if err != nil {
		return h.observe("user", err)
	}
	return c.JSON(user)
}

// CreateUser handles POST /users
// @Summary Create a user
// @Description Create a user. The password is stored as a bcrypt hash.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.UserInput true "User fields"
// @Success 201 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.UserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := services.CreateUser(h.DB, input, h.BcryptCost)
	if err != nil {
		return err
	}
	h.Metrics.Created("user")

	return utils.MessageResponse(c, fiber.StatusCreated, "User created successfully", "user", user)
}

// UpdateUser handles PUT and PATCH /users/:id
// @Summary Update a user
// @Description Apply the fields present in the body; absent fields are left unchanged
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UserInput true "User fields"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input services.UserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := services.UpdateUser(h.DB, id, input, h.BcryptCost)
	if err != nil {
		return h.observe("user", err)
	}

	return utils.MessageResponse(c, fiber.StatusOK, "User updated successfully", "user", user)
}

// DeleteUser handles DELETE /users/:id
// @Summary Delete a user
// @Description Delete a user together with their favorites
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteUser(h.DB, id); err != nil {
		return h.observe("user", err)
	}
	h.Metrics.Deleted("user")

	return utils.MessageResponse(c, fiber.StatusOK, "User deleted successfully", "", nil)
}

// GetUserFavorites handles GET /users/favorites?user_id=
// @Summary List a user's favorites
// @Tags Users
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} services.UserFavorites
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/favorites [get]
func (h *UserHandler) GetUserFavorites(c *fiber.Ctx) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}
	favorites, err := services.ListUserFavorites(h.DB, userID)
	if err != nil {
		return h.observe("user", err)
	}
	return c.JSON(favorites)
}
