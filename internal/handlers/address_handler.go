package handlers

import (
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

const addressNotFound = "Address not found"

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	addresses, err := h.addressService.List(c.UserContext(), me)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAddressList(addresses))
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	address, err := h.addressService.Create(c.UserContext(), me, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewAddressResponse(address))
}

func (h *AddressHandler) Get(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, addressNotFound)
	if err != nil {
		return err
	}

	address, err := h.addressService.Get(c.UserContext(), me, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAddressResponse(address))
}

func (h *AddressHandler) Replace(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, addressNotFound)
	if err != nil {
		return err
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	address, err := h.addressService.Replace(c.UserContext(), me, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAddressResponse(address))
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, addressNotFound)
	if err != nil {
		return err
	}

	var req dto.UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	address, err := h.addressService.Update(c.UserContext(), me, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAddressResponse(address))
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	me, err := caller(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, addressNotFound)
	if err != nil {
		return err
	}

	if err := h.addressService.Delete(c.UserContext(), me, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
