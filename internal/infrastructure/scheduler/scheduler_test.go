package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agro-inventario/pkg/logger"
)

func TestScheduler_RegisterYRunNow(t *testing.T) {
	s := New(time.Second, logger.Nop())
	calls := 0
	require.NoError(t, s.Register("summary-scan", "@every 1h", func(ctx context.Context) error {
		calls++
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))

	assert.Equal(t, map[string]string{"summary-scan": "@every 1h"}, s.Jobs())
	require.NoError(t, s.RunNow("summary-scan"))
	assert.Equal(t, 1, calls)
}

func TestScheduler_Errores(t *testing.T) {
	s := New(0, logger.Nop())
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Register("a", "*/5 * * * *", noop))
	assert.ErrorContains(t, s.Register("a", "@hourly", noop), "duplicada")
	assert.Error(t, s.Register("b", "no es cron", noop))
	assert.ErrorContains(t, s.RunNow("c"), "desconocida")

	boom := errors.New("boom")
	require.NoError(t, s.Register("falla", "@daily", func(context.Context) error { return boom }))
	assert.ErrorIs(t, s.RunNow("falla"), boom)
}

func TestScheduler_StopCancelaContexto(t *testing.T) {
	s := New(0, logger.Nop())
	var seen context.Context
	require.NoError(t, s.Register("x", "@daily", func(ctx context.Context) error {
		seen = ctx
		return nil
	}))
	s.Start()
	require.NoError(t, s.RunNow("x"))
	require.NoError(t, s.Stop(context.Background()))
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}
