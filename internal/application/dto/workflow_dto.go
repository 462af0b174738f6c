package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchProductRequest producto escaneado dentro de un batch de intake.
type BatchProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	ASIN        string          `json:"asin,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	Condition   string          `json:"condition" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	CostOfGoods decimal.Decimal `json:"cost_of_goods"`
}

// CreateWorkflowBatchRequest body para POST /api/workflow-batches.
type CreateWorkflowBatchRequest struct {
	AccountID       string                `json:"account_id" validate:"required"`
	BatchNumber     string                `json:"batch_number" validate:"required"`
	FulfillmentType string                `json:"fulfillment_type" validate:"required,oneof=FBA FBM"`
	Products        []BatchProductRequest `json:"products" validate:"required,min=1,dive"`
}

// BatchProductResponse línea persistida del batch.
type BatchProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	ASIN        string          `json:"asin,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	Condition   string          `json:"condition"`
	Quantity    int64           `json:"quantity"`
	CostOfGoods decimal.Decimal `json:"cost_of_goods"`
}

// WorkflowBatchResponse batch de intake con sus productos.
type WorkflowBatchResponse struct {
	ID              string                 `json:"id"`
	AccountID       string                 `json:"account_id"`
	BatchNumber     string                 `json:"batch_number"`
	FulfillmentType string                 `json:"fulfillment_type"`
	Products        []BatchProductResponse `json:"products"`
	Status          string                 `json:"status"`
	Version         int64                  `json:"version"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
