package procurement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/procurement"
)

// TestValidateTransitionPO_CaminoFeliz el ciclo completo draft → ordered →
// shipped → received es válido paso a paso.
func TestValidateTransitionPO_CaminoFeliz(t *testing.T) {
	camino := []entity.POStatus{
		entity.POStatusDraft,
		entity.POStatusOrdered,
		entity.POStatusShipped,
		entity.POStatusReceived,
	}
	for i := 0; i < len(camino)-1; i++ {
		require.NoError(t, procurement.ValidateTransitionPO(camino[i], camino[i+1]),
			"%s → %s debe ser válida", camino[i], camino[i+1])
	}
}

// TestValidateTransitionPO_SaltosInvalidos no se puede saltar estados ni
// retroceder; el error no tiene efectos colaterales.
func TestValidateTransitionPO_SaltosInvalidos(t *testing.T) {
	invalidas := []struct{ from, to entity.POStatus }{
		{entity.POStatusDraft, entity.POStatusShipped},
		{entity.POStatusDraft, entity.POStatusReceived},
		{entity.POStatusOrdered, entity.POStatusReceived},
		{entity.POStatusShipped, entity.POStatusDraft},
		{entity.POStatusOrdered, entity.POStatusDraft},
	}
	for _, tc := range invalidas {
		err := procurement.ValidateTransitionPO(tc.from, tc.to)
		require.Error(t, err, "%s → %s debe rechazarse", tc.from, tc.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

// TestValidateTransitionPO_EstadosTerminales received y cancelled no admiten
// ninguna transición posterior.
func TestValidateTransitionPO_EstadosTerminales(t *testing.T) {
	destinos := []entity.POStatus{
		entity.POStatusDraft, entity.POStatusOrdered, entity.POStatusShipped,
		entity.POStatusReceived, entity.POStatusCancelled,
	}
	for _, terminal := range []entity.POStatus{entity.POStatusReceived, entity.POStatusCancelled} {
		assert.True(t, procurement.IsTerminalPO(terminal))
		for _, to := range destinos {
			assert.ErrorIs(t, procurement.ValidateTransitionPO(terminal, to),
				domain.ErrInvalidTransition, "%s es terminal, %s → %s debe rechazarse", terminal, terminal, to)
		}
	}
}

// TestValidateTransitionPO_CancelledAlcanzable cancelled es alcanzable desde
// cualquier estado no terminal.
func TestValidateTransitionPO_CancelledAlcanzable(t *testing.T) {
	for _, from := range []entity.POStatus{entity.POStatusDraft, entity.POStatusOrdered, entity.POStatusShipped} {
		assert.NoError(t, procurement.ValidateTransitionPO(from, entity.POStatusCancelled),
			"%s → cancelled debe ser válida", from)
	}
}

// TestValidateTransitionBatch mismo contrato para el pipeline de intake:
// draft → in_progress → shipped → completed, con cancelled desde no terminales.
func TestValidateTransitionBatch(t *testing.T) {
	camino := []entity.BatchStatus{
		entity.BatchStatusDraft,
		entity.BatchStatusInProgress,
		entity.BatchStatusShipped,
		entity.BatchStatusCompleted,
	}
	for i := 0; i < len(camino)-1; i++ {
		require.NoError(t, procurement.ValidateTransitionBatch(camino[i], camino[i+1]))
	}

	assert.ErrorIs(t, procurement.ValidateTransitionBatch(entity.BatchStatusDraft, entity.BatchStatusCompleted),
		domain.ErrInvalidTransition, "draft → completed salta estados")

	for _, from := range []entity.BatchStatus{entity.BatchStatusDraft, entity.BatchStatusInProgress, entity.BatchStatusShipped} {
		assert.NoError(t, procurement.ValidateTransitionBatch(from, entity.BatchStatusCancelled))
	}

	assert.True(t, procurement.IsTerminalBatch(entity.BatchStatusCompleted))
	assert.True(t, procurement.IsTerminalBatch(entity.BatchStatusCancelled))
	assert.False(t, procurement.IsTerminalBatch(entity.BatchStatusShipped))
}
