package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
)
