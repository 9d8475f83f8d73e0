package server

import (
	"foodgram/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
// It renders the user's aggregated shopping list as a plain-text attachment.
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	items, err := s.shoppingService.Compute(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	middleware.ShoppingListDownloads.Inc()

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.SendString(s.shoppingService.Render(items))
}
