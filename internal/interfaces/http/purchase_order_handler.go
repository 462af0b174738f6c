package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	appprocurement "github.com/jhoicas/Costeo-api/internal/application/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// PurchaseOrderHandler ciclo de vida de órdenes de compra vía HTTP.
type PurchaseOrderHandler struct {
	uc  *appprocurement.UseCase
	pdf *appprocurement.PDFUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *appprocurement.UseCase, pdf *appprocurement.PDFUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  La orden nace en draft con version 1.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "account_id, po_number, supplier_id, lines"
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	po := &entity.PurchaseOrder{
		AccountID:        in.AccountID,
		PONumber:         in.PONumber,
		SupplierID:       in.SupplierID,
		EstimatedArrival: in.EstimatedArrival,
	}
	for _, l := range in.Lines {
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			SKU:      l.SKU,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		})
	}

	created, err := h.uc.CreatePurchaseOrder(c.Context(), po)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(created))
}

// GetByID godoc
// @Summary      Consultar orden de compra
// @Tags         purchase-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetPurchaseOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Transition godoc
// @Summary      Transicionar estado de una orden
// @Description  Aplica la transición y sus efectos (snapshots, envío FBA,
//
//	lotes de costo) en una transacción. version debe coincidir con
//	la versión leída; si no, 409 y el cliente recarga.
//
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la orden"
// @Param        body  body  dto.TransitionRequest  true  "status destino + version esperada"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchaseOrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}
	target, ok := entity.ParsePOStatus(in.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconocido"})
	}

	po, err := h.uc.Transition(c.Context(), c.Params("id"), target, in.Version)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// GetPDF godoc
// @Summary      PDF de la orden de compra
// @Tags         purchase-orders
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchaseOrderHandler) GetPDF(c *fiber.Ctx) error {
	doc, err := h.pdf.GeneratePurchaseOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-de-compra.pdf"`)
	return c.Send(doc)
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	out := dto.PurchaseOrderResponse{
		ID:                   po.ID,
		AccountID:            po.AccountID,
		PONumber:             po.PONumber,
		SupplierID:           po.SupplierID,
		Status:               string(po.Status),
		EstimatedArrival:     po.EstimatedArrival,
		LinkedFBAShipmentIDs: po.LinkedFBAShipmentIDs,
		TotalCost:            po.TotalCost(),
		Version:              po.Version,
		CreatedAt:            po.CreatedAt,
		UpdatedAt:            po.UpdatedAt,
	}
	if out.LinkedFBAShipmentIDs == nil {
		out.LinkedFBAShipmentIDs = []string{}
	}
	for _, l := range po.Lines {
		out.Lines = append(out.Lines, dto.POLineResponse{
			SKU:      l.SKU,
			Quantity: l.Quantity,
			UnitCost: l.UnitCost,
		})
	}
	return out
}
