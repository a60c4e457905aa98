package worker

import (
	"sync"

	"go.uber.org/zap"
)

// Event is a named payload fanned out to realtime subscribers.
type Event struct {
	Name    string
	Payload any
}

// Publisher delivers an event to all connected clients.
type Publisher interface {
	Publish(event string, payload any)
}

// EventDispatcher decouples domain services from the realtime hub: services
// enqueue events and a pool of worker goroutines performs the fan-out, so a
// slow subscriber never blocks a request handler.
type EventDispatcher struct {
	taskQueue chan Event
	publisher Publisher
	logger    *zap.Logger
	wg        sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewEventDispatcher creates a dispatcher backed by workerCount goroutines
// and a buffered queue of queueSize events.
func NewEventDispatcher(workerCount, queueSize int, publisher Publisher, logger *zap.Logger) *EventDispatcher {
	d := &EventDispatcher{
		taskQueue: make(chan Event, queueSize),
		publisher: publisher,
		logger:    logger,
	}

	for i := 0; i < workerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	logger.Info("event dispatcher started", zap.Int("workers", workerCount))
	return d
}

// Stop gracefully stops the dispatcher, draining queued events first.
// Events emitted after Stop are discarded.
func (d *EventDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.taskQueue)
	d.mu.Unlock()

	d.logger.Info("stopping event dispatcher")
	d.wg.Wait()
	d.logger.Info("event dispatcher stopped")
}

// Emit enqueues an event for fan-out. The read lock keeps the channel open
// for the duration of the send, so Emit never races a concurrent Stop.
func (d *EventDispatcher) Emit(name string, payload any) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("event dispatcher is stopped, discarding event", zap.String("event", name))
		return
	}

	select {
	case d.taskQueue <- Event{Name: name, Payload: payload}:
	default:
		d.logger.Warn("event queue full, discarding event", zap.String("event", name))
	}
}

func (d *EventDispatcher) worker(id int) {
	defer d.wg.Done()

	for event := range d.taskQueue {
		d.publisher.Publish(event.Name, event.Payload)
		d.logger.Debug("event dispatched",
			zap.Int("worker_id", id),
			zap.String("event", event.Name))
	}
}
