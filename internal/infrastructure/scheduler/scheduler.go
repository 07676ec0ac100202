// Package scheduler ejecuta tareas periódicas (escaneo de alertas, auditoría de saldos)
// sobre robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// JobFunc tarea programada. Recibe un contexto que se cancela al detener el scheduler
// o al vencer el timeout de la ejecución.
type JobFunc func(ctx context.Context) error

type job struct {
	schedule string
	run      JobFunc
}

// Scheduler registro de tareas con nombre.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	log     *logger.Logger

	mu   sync.Mutex
	jobs map[string]job

	ctx    context.Context
	cancel context.CancelFunc
}

// New crea un scheduler. timeout acota cada ejecución (0 = sin límite).
func New(timeout time.Duration, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("scheduler")
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{log}), cron.Recover(cronLogger{log}))),
		timeout: timeout,
		log:     log,
		jobs:    make(map[string]job),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register agrega una tarea. Falla si el nombre se repite o la expresión es inválida.
func (s *Scheduler) Register(name, schedule string, run JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("tarea duplicada %q", name)
	}
	if _, err := s.cron.AddFunc(schedule, func() { _ = s.execute(name, run) }); err != nil {
		return fmt.Errorf("registrar tarea %q (%s): %w", name, schedule, err)
	}
	s.jobs[name] = job{schedule: schedule, run: run}
	return nil
}

// Jobs devuelve nombre → expresión cron de las tareas registradas.
func (s *Scheduler) Jobs() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.jobs))
	for name, j := range s.jobs {
		out[name] = j.schedule
	}
	return out
}

// RunNow ejecuta una tarea fuera de su horario.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("tarea desconocida %q", name)
	}
	return s.execute(name, j.run)
}

func (s *Scheduler) execute(name string, run JobFunc) error {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := run(ctx)
	ev := s.log.Info()
	if err != nil {
		ev = s.log.Error().Err(err)
	}
	ev.Str("job", name).Dur("duration", time.Since(start)).Msg("tarea ejecutada")
	return err
}

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.Jobs())).Msg("scheduler iniciado")
}

// Stop cancela las ejecuciones en curso y espera a que terminen o a que ctx venza.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler detenido")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapta el logger de la aplicación a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
