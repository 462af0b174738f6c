package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	appprocurement "github.com/jhoicas/Costeo-api/internal/application/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// WorkflowHandler batches de intake reseller vía HTTP.
type WorkflowHandler struct {
	uc *appprocurement.WorkflowUseCase
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(uc *appprocurement.WorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{uc: uc}
}

// Create godoc
// @Summary      Crear batch de intake
// @Tags         workflow-batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkflowBatchRequest  true  "account_id, batch_number, fulfillment_type, products"
// @Success      201  {object}  dto.WorkflowBatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workflow-batches [post]
func (h *WorkflowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkflowBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}

	batch := &entity.WorkflowBatch{
		AccountID:       in.AccountID,
		BatchNumber:     in.BatchNumber,
		FulfillmentType: entity.FulfillmentType(in.FulfillmentType),
	}
	for _, p := range in.Products {
		batch.Products = append(batch.Products, entity.BatchProduct{
			SKU:         p.SKU,
			ASIN:        p.ASIN,
			Barcode:     p.Barcode,
			Condition:   p.Condition,
			Quantity:    p.Quantity,
			CostOfGoods: p.CostOfGoods,
		})
	}

	created, err := h.uc.CreateBatch(c.Context(), batch)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWorkflowBatchResponse(created))
}

// GetByID godoc
// @Summary      Consultar batch de intake
// @Tags         workflow-batches
// @Produce      json
// @Param        id  path  string  true  "ID del batch"
// @Success      200  {object}  dto.WorkflowBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workflow-batches/{id} [get]
func (h *WorkflowHandler) GetByID(c *fiber.Ctx) error {
	batch, err := h.uc.GetBatch(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toWorkflowBatchResponse(batch))
}

// Transition godoc
// @Summary      Transicionar estado de un batch
// @Description  Al completarse, cada producto genera un lote de costo (método
//
//	batch) y suma su cantidad al stock fba_fbm, en una transacción.
//
// @Tags         workflow-batches
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del batch"
// @Param        body  body  dto.TransitionRequest  true  "status destino + version esperada"
// @Success      200  {object}  dto.WorkflowBatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workflow-batches/{id}/status [patch]
func (h *WorkflowHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}
	target, ok := entity.ParseBatchStatus(in.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconocido"})
	}

	batch, err := h.uc.TransitionBatch(c.Context(), c.Params("id"), target, in.Version)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toWorkflowBatchResponse(batch))
}

func toWorkflowBatchResponse(batch *entity.WorkflowBatch) dto.WorkflowBatchResponse {
	out := dto.WorkflowBatchResponse{
		ID:              batch.ID,
		AccountID:       batch.AccountID,
		BatchNumber:     batch.BatchNumber,
		FulfillmentType: string(batch.FulfillmentType),
		Status:          string(batch.Status),
		Version:         batch.Version,
		CreatedAt:       batch.CreatedAt,
		UpdatedAt:       batch.UpdatedAt,
	}
	for _, p := range batch.Products {
		out.Products = append(out.Products, dto.BatchProductResponse{
			ID:          p.ID,
			SKU:         p.SKU,
			ASIN:        p.ASIN,
			Barcode:     p.Barcode,
			Condition:   p.Condition,
			Quantity:    p.Quantity,
			CostOfGoods: p.CostOfGoods,
		})
	}
	return out
}
