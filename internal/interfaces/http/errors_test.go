package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		err        error
		status     int
		code       string
		retryAfter string
	}{
		{domain.NewValidationError("quantity", "debe ser mayor que cero"), fiber.StatusBadRequest, dto.CodeValidation, ""},
		{fmt.Errorf("buscar: %w", domain.ErrNotFound), fiber.StatusNotFound, dto.CodeNotFound, ""},
		{domain.ErrInsufficientStock, fiber.StatusConflict, dto.CodeInsufficientBalance, ""},
		{fmt.Errorf("bloqueo: %w", domain.ErrConflict), fiber.StatusConflict, dto.CodeConflict, "1"},
		{domain.NewStorageError("insertar movimiento", errors.New("connection reset")), fiber.StatusServiceUnavailable, dto.CodeStorage, ""},
		{context.DeadlineExceeded, fiber.StatusServiceUnavailable, dto.CodeStorage, ""},
		{fmt.Errorf("lock item: %w", context.Canceled), statusClientClosedRequest, dto.CodeCanceled, ""},
		{errors.New("inesperado"), fiber.StatusInternalServerError, dto.CodeInternal, ""},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, logger.Nop(), tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.retryAfter, resp.Header.Get(fiber.HeaderRetryAfter))

			raw, _ := io.ReadAll(resp.Body)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotContains(t, body.Message, "connection reset")
		})
	}
}

func TestWriteError_CancelacionNoSeRegistraComoError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, log, context.Canceled) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, statusClientClosedRequest, resp.StatusCode)
	assert.Empty(t, buf.String(), "una desconexión del cliente solo se registra en debug")

	app = fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, log, errors.New("inesperado")) })
	_, err = app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestValidateStruct_UsaNombresJSON(t *testing.T) {
	details := validateStruct(&dto.RegisterMovementRequest{Kind: "transfer"})
	assert.Equal(t, "es obligatorio", details["itemId"])
	assert.Equal(t, "es obligatorio", details["quantity"])
	assert.Equal(t, "debe ser uno de: entrance exit adjustment", details["kind"])
}
