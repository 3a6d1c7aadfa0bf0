package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUsernameExists     = errors.New("el nombre de usuario ya existe")
	ErrInvalidCredentials = errors.New("usuario o contraseña inválidos")
	ErrAlreadyFulfilled   = errors.New("la orden de compra ya fue recibida")
	ErrOrderCancelled     = errors.New("la orden de compra está cancelada")
	ErrLockNotAcquired    = errors.New("recurso ocupado, intente de nuevo")
)
