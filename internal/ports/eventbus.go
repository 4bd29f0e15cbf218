// Package ports define the EventBus interface for event-driven communication.
package ports

import (
	"github.com/tejashwikalptaru/beetbox/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Services publish what happened (a track started, the volume changed) and
// the display subscribes, so services never hold a reference to a view.
//
// Thread-safety: implementations must be thread-safe. Handlers run on the
// publisher's goroutine; a handler that is reached from an engine goroutine
// must hand its work to a Scheduler before touching shared state.
//
// Example usage:
//
//	subID := bus.Subscribe(domain.EventVolumeChanged, func(event domain.Event) {
//	    e := event.(domain.VolumeChangedEvent)
//	    view.SetVolumeLabel(strconv.Itoa(e.Volume))
//	})
//	defer bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers event to the subscribers of its type, then to the
	// catch-all subscribers, in subscription order.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Returns a SubscriptionID that can be used to unsubscribe later.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// SubscribeAll registers a handler that receives all events regardless of type.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered event handler.
	// Unknown IDs are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// Close drops every subscription. Publishing afterwards does nothing.
	Close() error
}
