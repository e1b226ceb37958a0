package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrIllegalTransition: el estado destino no está entre los siguientes permitidos.
	ErrIllegalTransition = errors.New("transición de estado no permitida")
	// ErrInvalidHours: registro de tiempo con horas <= 0.
	ErrInvalidHours = errors.New("las horas deben ser mayores que cero")
)
