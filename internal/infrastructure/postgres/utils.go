package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/agro-inventario/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
	codeNumericOutOfRange    = "22003"
)

// mapError traduce errores de pgx al vocabulario del dominio:
// bloqueo no disponible, serialización, deadlock y clave duplicada -> ErrConflict; FK -> ErrNotFound;
// valor fuera del rango de NUMERIC(18,4) -> ErrInvalidInput; cancelación de contexto se propaga tal cual; el resto es StorageError (reintentable).
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected, codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		case codeNumericOutOfRange:
			return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
		}
	}
	return domain.NewStorageError(op, err)
}
