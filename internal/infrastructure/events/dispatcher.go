// Package events provides the in-process domain event dispatcher
package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pantryplan/api/internal/domain/shared"
)

// Observer is notified of every dispatched event and every failed handler
type Observer interface {
	DomainEvent(name string)
	RecordError(service, errorType string)
}

// Dispatcher delivers domain events synchronously to registered handlers
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	observer Observer
	logger   *zap.Logger
}

var _ shared.EventDispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher; observer may be nil
func NewDispatcher(observer Observer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]shared.EventHandler),
		observer: observer,
		logger:   logger.Named("events"),
	}
}

// Dispatch hands the event to every handler registered for its name.
// A failing handler is logged and does not stop the others.
func (d *Dispatcher) Dispatch(event shared.DomainEvent) error {
	name := event.EventName()
	if d.observer != nil {
		d.observer.DomainEvent(name)
	}

	d.mu.RLock()
	handlers := d.handlers[name]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		d.logger.Debug("No handlers registered for event", zap.String("event", name))
		return nil
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			d.logger.Error("Failed to handle event",
				zap.String("event", name),
				zap.Time("occurred_at", event.OccurredAt()),
				zap.Error(err),
			)
			if d.observer != nil {
				d.observer.RecordError("events", name)
			}
		}
	}
	return nil
}

// Register adds a handler for an event name
func (d *Dispatcher) Register(eventName string, handler shared.EventHandler) {
	d.mu.Lock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
	d.mu.Unlock()
	d.logger.Debug("Registered event handler", zap.String("event", eventName))
}
