package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrValidation          = errors.New("entrada inválida")
	ErrBatchNotFound       = errors.New("lote (batch) no encontrado")
	ErrInsufficientData    = errors.New("sin lotes en la ventana de tiempo solicitada")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia: versión desactualizada")
	ErrDuplicate           = errors.New("recurso duplicado")
)
