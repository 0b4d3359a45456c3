package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("registro no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrDuplicatePayment   = errors.New("la cuota ya fue pagada")
	ErrInvalidState       = errors.New("transición de estado inválida")
	ErrInconsistentLedger = errors.New("las cuotas no suman el total de la venta")
	ErrInvalidPassword    = errors.New("contraseña inválida")
	ErrUnauthorized       = errors.New("no autorizado")
)
