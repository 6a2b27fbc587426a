package postgres

import (
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsConnectionError clasifica fallos atribuibles a la conexión (socket
// caído, servidor reiniciado) frente a errores de consulta. Solo los
// primeros justifican invalidar la sesión para reconectar en la próxima
// petición.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Clase 08: connection exception
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return pgconn.SafeToRetry(err)
}
