package handlers

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Endpoint is one route listed by the sitemap
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Endpoints lists the routes registered on app, sorted by path then method.
// Middleware mounts and HEAD routes are left out.
func Endpoints(app *fiber.App) []Endpoint {
	seen := make(map[Endpoint]struct{})
	endpoints := []Endpoint{}

	for _, route := range app.GetRoutes(true) {
		if route.Method == fiber.MethodHead || route.Path == "" {
			continue
		}
		ep := Endpoint{Method: route.Method, Path: route.Path}
		if _, dup := seen[ep]; dup {
			continue
		}
		seen[ep] = struct{}{}
		endpoints = append(endpoints, ep)
	}

	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Path != endpoints[j].Path {
			return strings.Compare(endpoints[i].Path, endpoints[j].Path) < 0
		}
		return endpoints[i].Method < endpoints[j].Method
	})

	return endpoints
}

// Sitemap handles GET /
// @Summary List the API endpoints
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string][]handlers.Endpoint
// @Router / [get]
func Sitemap(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"endpoints": Endpoints(c.App())})
}
