package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// listenerTimeout limita cada execução de um ouvinte.
const listenerTimeout = 30 * time.Second

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus entrega eventos de forma assíncrona; Wait aguarda as entregas
// pendentes (usado antes de encerrar o processo).
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	pending   sync.WaitGroup
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger.Named("eventbus"),
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish tolera receptor nulo para que serviços funcionem sem barramento.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.pending.Add(1)
		go func(l Listener) {
			defer b.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("erro no ouvinte de evento",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

func (b *Bus) Wait() {
	if b == nil {
		return
	}
	b.pending.Wait()
}
