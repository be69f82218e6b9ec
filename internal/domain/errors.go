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

	// Flujo de trabajo (lotes y pasos de protocolo)
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrExecutionNotFound = errors.New("el paso no se ha iniciado para este lote")
	ErrAmbiguousStep     = errors.New("el código del paso coincide con más de un paso del protocolo")
)
