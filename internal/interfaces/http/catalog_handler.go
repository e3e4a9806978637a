package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-system/internal/application/dto"
)

// crudUseCase forma común de los catálogos (categorías, proveedores, clientes, usuarios).
type crudUseCase[Req, Resp any] interface {
	Create(ctx context.Context, in Req) (*Resp, error)
	GetByID(ctx context.Context, id string) (*Resp, error)
	Update(ctx context.Context, id string, in Req) (*Resp, error)
	List(ctx context.Context, in dto.ListRequest) (*dto.ListResponse[Resp], error)
	Delete(ctx context.Context, id string) error
}

// CatalogHandler CRUD HTTP genérico sobre un caso de uso de catálogo.
//
//	GET    /            listar (search, limit, offset)
//	POST   /            crear
//	GET    /:id         obtener
//	PUT    /:id         reemplazar
//	DELETE /:id         eliminar
type CatalogHandler[Req, Resp any] struct {
	uc crudUseCase[Req, Resp]
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler[Req, Resp any](uc crudUseCase[Req, Resp]) *CatalogHandler[Req, Resp] {
	return &CatalogHandler[Req, Resp]{uc: uc}
}

// Register monta las cinco rutas sobre g.
func (h *CatalogHandler[Req, Resp]) Register(g fiber.Router) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func (h *CatalogHandler[Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler[Req, Resp]) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Update(c *fiber.Ctx) error {
	var in Req
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) List(c *fiber.Ctx) error {
	var in dto.ListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
