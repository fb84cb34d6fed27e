// Package scheduler ejecuta tareas periódicas del POS con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// LowStockSource entrega los productos en o bajo su umbral.
type LowStockSource interface {
	LowStockProducts(ctx context.Context) ([]*entity.Product, error)
}

// Scheduler envuelve cron.Cron con el logger de la app.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// New crea el scheduler en la zona horaria del local.
func New(log *logger.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLogger{log}))),
		log:  log.Component("scheduler"),
	}
}

// AddLowStockSweep registra el barrido de stock bajo. spec vacío = deshabilitado.
func (s *Scheduler) AddLowStockSweep(spec string, src LowStockSource) error {
	if spec == "" {
		s.log.Info().Msg("barrido de stock bajo deshabilitado")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = SweepLowStock(ctx, src, s.log)
	})
	if err != nil {
		return fmt.Errorf("cron %q: %w", spec, err)
	}
	return nil
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el cron y espera a que terminen las tareas en curso o a ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// SweepLowStock consulta, registra en el log y publica el gauge. Devuelve la cantidad encontrada.
func SweepLowStock(ctx context.Context, src LowStockSource, log *logger.Logger) (int, error) {
	items, err := src.LowStockProducts(ctx)
	if err != nil {
		metrics.RecordJobRun("low_stock", false)
		log.Error().Err(err).Msg("barrido de stock bajo falló")
		return 0, err
	}
	metrics.RecordJobRun("low_stock", true)
	metrics.SetLowStock(len(items))
	for _, p := range items {
		log.Warn().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Int("stock_qty", p.StockQty).
			Int("threshold", p.LowStockThreshold).
			Msg("stock bajo")
	}
	log.Info().Int("count", len(items)).Msg("barrido de stock bajo completado")
	return len(items), nil
}

// cronLogger adapta logger.Logger a cron.Logger.
type cronLogger struct{ l *logger.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug().Fields(keysAndValues).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
