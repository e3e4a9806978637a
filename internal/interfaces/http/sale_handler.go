package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// SaleHandler maneja ventas, cobros y recibos.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock de cada línea (movimiento outgoing con reference = invoice_number) en la misma transacción.
// @Description  Si una línea no tiene stock, no se guarda nada.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Vendedor"
// @Param        body  body  dto.CreateSaleRequest  true  "Venta con sus líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	input := sales.CreateSaleInput{
		InvoiceNumber: in.InvoiceNumber,
		CustomerID:    in.CustomerID,
		PaymentStatus: in.PaymentStatus,
		PaymentMethod: in.PaymentMethod,
		SalespersonID: GetActorID(c),
		Notes:         in.Notes,
		Items:         make([]sales.CreateSaleItem, 0, len(in.Items)),
	}
	if in.SaleDate != nil {
		input.SaleDate = *in.SaleDate
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, sales.CreateSaleItem{
			ProductID:          it.ProductID,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountPercentage: it.DiscountPercentage,
		})
	}
	sale, err := h.uc.Create(c.Context(), GetActorID(c), input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleFrom(sale))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SaleFrom(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        customer_id  query  string  false  "Cliente"
// @Param        status       query  string  false  "pending | paid | partial | overdue"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to           query  string  false  "Hasta (inclusive)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.SaleResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	in.DefaultPage()
	from, err := dto.ParseDate(in.From, false)
	if err != nil {
		return fail(c, err)
	}
	to, err := dto.ParseDate(in.To, true)
	if err != nil {
		return fail(c, err)
	}
	list, err := h.uc.List(c.Context(), repository.SaleFilter{
		CustomerID:    in.CustomerID,
		PaymentStatus: in.Status,
		From:          from,
		To:            to,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return fail(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SaleFrom(s))
	}
	return c.JSON(dto.ListResponse[dto.SaleResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	})
}

// UpdatePayment godoc
// @Summary      Actualizar estado de pago
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdatePaymentRequest  true  "payment_status y payment_method opcional"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payment [patch]
func (h *SaleHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	sale, err := h.uc.UpdatePayment(c.Context(), c.Params("id"), in.PaymentStatus, in.PaymentMethod)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.SaleFrom(sale))
}

// Delete godoc
// @Summary      Anular venta
// @Description  Devuelve al stock las cantidades vendidas (movimiento incoming por línea) y elimina la venta.
// @Tags         sales
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActorID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Recibo PDF de la venta
// @Tags         sales
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/pdf [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Receipt(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}
