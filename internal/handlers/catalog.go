package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/starwars-api/internal/services"
	"github.com/localnerve/starwars-api/internal/utils"
)

// CatalogHandler serves list/get/create/delete for one catalog entity.
// ListKey names the array in list responses, e.g. "planets" or "people".
// swag cannot annotate generic methods, so each mounted prefix is described
// by hand in docs/api/docs.go; TestSwaggerDocCoversRoutes keeps the two in step.
type CatalogHandler[T any, PT interface {
	*T
	services.Record
}] struct {
	*Handler
	Catalog services.Catalog[T, PT]
	ListKey string
}

// NewCatalogHandler creates a handler for catalog, answering lists under listKey
func NewCatalogHandler[T any, PT interface {
	*T
	services.Record
}](h *Handler, catalog services.Catalog[T, PT], listKey string) *CatalogHandler[T, PT] {
	return &CatalogHandler[T, PT]{Handler: h, Catalog: catalog, ListKey: listKey}
}

// List handles GET /<entities>
func (h *CatalogHandler[T, PT]) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	items, err := h.Catalog.List(h.DB, page)
	if err != nil {
		return err
	}
	return utils.ListResponse(c, h.ListKey, items)
}

// Get handles GET /<entities>/:id
func (h *CatalogHandler[T, PT]) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.Catalog.Get(h.DB, id)
	if err != nil {
		return h.observe(h.Catalog.Entity, err)
	}
	return c.JSON(item)
}

// Create handles POST /<entities>
func (h *CatalogHandler[T, PT]) Create(c *fiber.Ctx) error {
	item := PT(new(T))
	if err := parseBody(c, item); err != nil {
		return err
	}
	if err := h.Catalog.Create(h.DB, item); err != nil {
		return h.observe(h.Catalog.Entity, err)
	}
	h.Metrics.Created(h.Catalog.Entity)

	return utils.MessageResponse(c, fiber.StatusCreated, h.Catalog.Label+" created successfully", h.Catalog.Entity, item)
}

// Delete handles DELETE /<entities>/:id
func (h *CatalogHandler[T, PT]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.Delete(h.DB, id); err != nil {
		return h.observe(h.Catalog.Entity, err)
	}
	h.Metrics.Deleted(h.Catalog.Entity)

	return utils.MessageResponse(c, fiber.StatusOK, h.Catalog.Label+" deleted successfully", "", nil)
}

// Register mounts the handler's routes under prefix
func (h *CatalogHandler[T, PT]) Register(router fiber.Router, prefix string) {
	router.Get(prefix, h.List)
	router.Post(prefix, h.Create)
	router.Get(prefix+"/:id", h.Get)
	router.Delete(prefix+"/:id", h.Delete)
}
