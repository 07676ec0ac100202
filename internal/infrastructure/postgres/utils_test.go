package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agro-inventario/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrConflict},
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), domain.ErrConflict},
		{"fk", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"clave duplicada", &pgconn.PgError{Code: "23505"}, domain.ErrConflict},
		{"numeric fuera de rango", &pgconn.PgError{Code: "22003"}, domain.ErrInvalidInput},
		{"check", &pgconn.PgError{Code: "23514"}, domain.ErrStorage},
		{"red", errors.New("connection reset by peer"), domain.ErrStorage},
		{"cancelado", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError("op", tt.err), tt.want)
		})
	}
	assert.NoError(t, mapError("op", nil))
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", pgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://u@h/db", pgx5URL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://x", pgx5URL("pgx5://x"))
}
