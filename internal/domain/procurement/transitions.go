package procurement

import (
	"fmt"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Máquina de estados de la orden de compra:
//
//	draft → ordered → shipped → received (terminal)
//	cancelled (terminal) alcanzable desde cualquier estado no terminal
var poTransitions = map[entity.POStatus][]entity.POStatus{
	entity.POStatusDraft:   {entity.POStatusOrdered, entity.POStatusCancelled},
	entity.POStatusOrdered: {entity.POStatusShipped, entity.POStatusCancelled},
	entity.POStatusShipped: {entity.POStatusReceived, entity.POStatusCancelled},
}

// Máquina de estados del batch de intake reseller:
//
//	draft → in_progress → shipped → completed (terminal)
//	cancelled (terminal) alcanzable desde cualquier estado no terminal
var batchTransitions = map[entity.BatchStatus][]entity.BatchStatus{
	entity.BatchStatusDraft:      {entity.BatchStatusInProgress, entity.BatchStatusCancelled},
	entity.BatchStatusInProgress: {entity.BatchStatusShipped, entity.BatchStatusCancelled},
	entity.BatchStatusShipped:    {entity.BatchStatusCompleted, entity.BatchStatusCancelled},
}

// CanTransitionPO indica si la transición from→to es válida.
func CanTransitionPO(from, to entity.POStatus) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransitionPO valida la transición; si es inválida devuelve
// ErrInvalidTransition sin efectos colaterales (el estado origen no cambia).
func ValidateTransitionPO(from, to entity.POStatus) error {
	if !CanTransitionPO(from, to) {
		return fmt.Errorf("%w: orden de compra %s → %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminalPO received y cancelled no admiten más transiciones.
func IsTerminalPO(s entity.POStatus) bool {
	return s == entity.POStatusReceived || s == entity.POStatusCancelled
}

// CanTransitionBatch indica si la transición from→to del batch es válida.
func CanTransitionBatch(from, to entity.BatchStatus) bool {
	for _, next := range batchTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransitionBatch valida la transición del batch de intake.
func ValidateTransitionBatch(from, to entity.BatchStatus) error {
	if !CanTransitionBatch(from, to) {
		return fmt.Errorf("%w: batch %s → %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminalBatch completed y cancelled no admiten más transiciones.
func IsTerminalBatch(s entity.BatchStatus) bool {
	return s == entity.BatchStatusCompleted || s == entity.BatchStatusCancelled
}
