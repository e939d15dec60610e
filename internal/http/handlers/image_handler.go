package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/log"
	"shopapi/internal/services"
)

type ImageHandler struct {
	Catalog *services.CatalogService
}

// Serve streams a stored image by its generated filename. Traversal
// attempts are logged and answered exactly like a missing image.
func (h *ImageHandler) Serve(c *fiber.Ctx) error {
	ref := c.Params("filename")
	path, err := h.Catalog.ImagePath(ref)
	if err != nil {
		log.Security(c, "image.resolve.fail", map[string]any{"ref": ref})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Image not found"})
	}
	return c.SendFile(path, true)
}
