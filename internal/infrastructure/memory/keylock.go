package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/agro-inventario/internal/domain"
)

// KeyLock exclusión mutua por clave con espera acotada. Claves distintas nunca compiten.
type KeyLock struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{} // semáforo de capacidad 1
	refs int           // poseedor + en espera
}

// NewKeyLock construye un KeyLock vacío.
func NewKeyLock() *KeyLock {
	return &KeyLock{slots: make(map[string]*slot)}
}

// Acquire bloquea key esperando a lo sumo timeout. Devuelve domain.ErrConflict si vence la
// espera y ctx.Err() si el contexto se cancela antes. La función devuelta libera el bloqueo.
func (k *KeyLock) Acquire(ctx context.Context, key string, timeout time.Duration) (func(), error) {
	k.mu.Lock()
	s, ok := k.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		k.slots[key] = s
	}
	s.refs++
	k.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				k.unref(key, s)
			})
		}, nil
	case <-timer.C:
		k.unref(key, s)
		return nil, domain.ErrConflict
	case <-ctx.Done():
		k.unref(key, s)
		return nil, ctx.Err()
	}
}

func (k *KeyLock) unref(key string, s *slot) {
	k.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(k.slots, key)
	}
	k.mu.Unlock()
}

// size cantidad de claves con poseedor o espera (tests).
func (k *KeyLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.slots)
}
