package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// InventoryHandler maneja el libro de movimientos de stock.
type InventoryHandler struct {
	uc    *inventory.RegisterMovementUseCase
	query *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, query *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  incoming/outgoing: quantity es el delta (> 0). adjustment: quantity es el stock final (>= 0).
// @Description  La actualización del stock y la entrada en el libro son atómicas y serializadas por producto.
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Usuario que registra el movimiento"
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type, quantity, unit_cost opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		if malformedQuantity(c.Body()) {
			return badRequest(c, CodeInvalidQuantity, "quantity debe ser un entero")
		}
		return badRequest(c, CodeInvalidBody, "cuerpo inválido")
	}
	if in.Quantity == "" {
		return badRequest(c, CodeInvalidQuantity, "quantity es obligatorio")
	}
	if err := validate.Struct(&in); err != nil {
		return badRequest(c, CodeValidation, validationMessage(err))
	}
	qty, ok := in.IntQuantity()
	if !ok {
		return badRequest(c, CodeInvalidQuantity, "quantity debe ser un entero")
	}
	res, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.MovementType,
		Quantity:  qty,
		UnitCost:  in.UnitCost,
		UserID:    GetActorID(c),
		Reference: in.Reference,
		Reason:    in.Reason,
		Notes:     in.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	out := dto.MovementFrom(res.Movement)
	out.LowStock = &res.LowStock
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         stock-movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.query.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MovementFrom(m))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero. Fechas YYYY-MM-DD o RFC3339.
// @Tags         stock-movements
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "initial | incoming | outgoing | adjustment"
// @Param        from        query  string  false  "Desde"
// @Param        to          query  string  false  "Hasta (inclusive)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	filter, err := movementFilter(in)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.query.List(c.Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementFrom(m))
	}
	return c.JSON(dto.ListResponse[dto.MovementResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// movementFilter traduce la query a filtro del repositorio (fechas incluidas).
func movementFilter(in dto.MovementListRequest) (repository.MovementFilter, error) {
	in.DefaultPage()
	from, err := dto.ParseDate(in.From, false)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	to, err := dto.ParseDate(in.To, true)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	return repository.MovementFilter{
		ProductID: in.ProductID,
		Type:      in.Type,
		From:      from,
		To:        to,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}, nil
}

// malformedQuantity indica si el cuerpo solo falla por el campo quantity.
func malformedQuantity(body []byte) bool {
	var in dto.RegisterMovementRequest
	if json.Unmarshal(body, &in) == nil {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	if _, ok := fields["quantity"]; !ok {
		return false
	}
	delete(fields, "quantity")
	rest, err := json.Marshal(fields)
	if err != nil {
		return false
	}
	return json.Unmarshal(rest, &in) == nil
}
