package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus estado de un batch del pipeline de intake reseller.
type BatchStatus string

const (
	BatchStatusDraft      BatchStatus = "draft"
	BatchStatusInProgress BatchStatus = "in_progress"
	BatchStatusShipped    BatchStatus = "shipped"
	BatchStatusCompleted  BatchStatus = "completed" // terminal
	BatchStatusCancelled  BatchStatus = "cancelled" // terminal
)

// ParseBatchStatus valida el string recibido por la API.
func ParseBatchStatus(s string) (BatchStatus, bool) {
	switch BatchStatus(s) {
	case BatchStatusDraft, BatchStatusInProgress, BatchStatusShipped,
		BatchStatusCompleted, BatchStatusCancelled:
		return BatchStatus(s), true
	}
	return "", false
}

// FulfillmentType canal de despacho del batch.
type FulfillmentType string

const (
	FulfillmentFBA FulfillmentType = "FBA"
	FulfillmentFBM FulfillmentType = "FBM"
)

// BatchProduct línea de producto escaneada dentro de un batch.
// El batch es dueño de sus líneas (se persisten y borran con él).
type BatchProduct struct {
	ID          string
	SKU         string
	ASIN        string
	Barcode     string
	Condition   string // new, used_like_new, used_good...
	Quantity    int64
	CostOfGoods decimal.Decimal // costo unitario pagado por el reseller
}

// WorkflowBatch agrupa productos escaneados de un intake de reseller.
// Al completarse, sus líneas se convierten en CostLots y stock vendible,
// igual que la recepción de una orden de compra.
type WorkflowBatch struct {
	ID              string
	AccountID       string
	BatchNumber     string
	FulfillmentType FulfillmentType
	Products        []BatchProduct
	Status          BatchStatus
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
