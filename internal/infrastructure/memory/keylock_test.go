package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agro-inventario/internal/domain"
)

func TestKeyLock_TimeoutDevuelveConflict(t *testing.T) {
	k := NewKeyLock()
	release, err := k.Acquire(context.Background(), "a", time.Second)
	require.NoError(t, err)
	defer release()

	start := time.Now()
	_, err = k.Acquire(context.Background(), "a", 30*time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestKeyLock_Cancelacion(t *testing.T) {
	k := NewKeyLock()
	release, err := k.Acquire(context.Background(), "a", time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err = k.Acquire(ctx, "a", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeyLock_ClavesDistintasNoCompiten(t *testing.T) {
	k := NewKeyLock()
	release, err := k.Acquire(context.Background(), "a", time.Second)
	require.NoError(t, err)
	defer release()

	other, err := k.Acquire(context.Background(), "b", 10*time.Millisecond)
	require.NoError(t, err)
	other()
}

func TestKeyLock_LiberaYLimpia(t *testing.T) {
	k := NewKeyLock()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := k.Acquire(context.Background(), "x", 5*time.Second)
			if err != nil {
				return
			}
			counter++
			release()
			release() // idempotente
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, k.size())
}
