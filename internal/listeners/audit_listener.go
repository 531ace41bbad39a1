package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"solicitation-system/internal/events"
	"solicitation-system/pkg/eventbus"
)

// AuditListener registra em log toda escrita em solicitações e destaca as
// escritas parciais, que precisam de conferência manual.
type AuditListener struct {
	logger *zap.Logger
}

func NewAuditListener(logger *zap.Logger) *AuditListener {
	return &AuditListener{logger: logger.Named("audit")}
}

func (l *AuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.SolicitationChangedEvent{}.Name(), l.Handle)
}

func (l *AuditListener) Handle(ctx context.Context, e eventbus.Event) error {
	ev, ok := e.(events.SolicitationChangedEvent)
	if !ok {
		return fmt.Errorf("evento inesperado: %T", e)
	}

	fields := []zap.Field{
		zap.String("op", ev.Op),
		zap.String("actor", ev.Actor),
		zap.String("id", ev.Solicitation.ID),
		zap.Int("numSol", ev.Solicitation.NumSol),
		zap.String("status", ev.Solicitation.Status),
	}

	switch {
	case ev.Err == nil:
		l.logger.Info("solicitação alterada", fields...)
	case ev.Partial():
		l.logger.Warn("escrita parcial: registro principal e histórico divergem", append(fields, zap.Error(ev.Err))...)
	default:
		l.logger.Error("falha ao alterar solicitação", append(fields, zap.Error(ev.Err))...)
	}
	return nil
}
