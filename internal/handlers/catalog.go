package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/storage"
)

// CatalogHandler exposes catalog administration over HTTP.
type CatalogHandler struct {
	store    storage.Store
	validate *validator.Validate
}

// NewCatalogHandler creates a catalog handler. Sizes are checked with the
// "size" tag, which accepts anything the dimension parser understands.
func NewCatalogHandler(store storage.Store) *CatalogHandler {
	v := validator.New()
	_ = v.RegisterValidation("size", func(fl validator.FieldLevel) bool {
		return pricing.ParseDimension(fl.Field().String()).Valid()
	})
	return &CatalogHandler{store: store, validate: v}
}

type productRequest struct {
	Name      string  `json:"name" validate:"required"`
	BasePrice float64 `json:"base_price" validate:"gte=0"`
}

type dimensionRequest struct {
	Label string  `json:"label" validate:"required,size"`
	Price float64 `json:"price" validate:"gte=0"`
}

type materialRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	SheetSize string  `json:"sheet_size" validate:"required,size"`
}

type chargeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *CatalogHandler) bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.store.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	p, err := h.store.CreateProduct(c.UserContext(), req.Name, req.BasePrice)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *CatalogHandler) ListDimensions(c *fiber.Ctx) error {
	dims, err := h.store.ListDimensions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dims)
}

func (h *CatalogHandler) CreateDimension(c *fiber.Ctx) error {
	var req dimensionRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	d, err := h.store.CreateDimension(c.UserContext(), req.Label, req.Price)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *CatalogHandler) ListMaterials(c *fiber.Ctx) error {
	materials, err := h.store.ListMaterials(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(materials)
}

func (h *CatalogHandler) CreateMaterial(c *fiber.Ctx) error {
	var req materialRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	m, err := h.store.CreateMaterial(c.UserContext(), &models.Material{
		Name:      req.Name,
		Price:     req.Price,
		SheetSize: req.SheetSize,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *CatalogHandler) ListCharges(c *fiber.Ctx) error {
	charges, err := h.store.ListChargeDefinitions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(charges)
}

func (h *CatalogHandler) CreateCharge(c *fiber.Ctx) error {
	var req chargeRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	ch, err := h.store.CreateChargeDefinition(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

func (h *CatalogHandler) DeleteCharge(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid charge id")
	}
	if err := h.store.DeleteChargeDefinition(c.UserContext(), uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "charge not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
