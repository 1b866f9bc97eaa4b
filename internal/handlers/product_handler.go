package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog; no authentication is required.
type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List supports ?category= as an exact-match filter.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.productService.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductList(products))
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "Product not found")
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(product))
}
