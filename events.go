package ecs

import (
	"reflect"
)

// EventType identifies the go type of an event payload.
type EventType struct {
	typ reflect.Type
}

// EventTypeOf returns the EventType of payloads of type T.
func EventTypeOf[T any]() EventType {
	return EventType{typ: reflect.TypeFor[T]()}
}

func (t EventType) String() string {
	if t.typ == nil {
		return "<nil>"
	}

	return t.typ.String()
}

// Event wraps an immutable event payload. Use EventData to get the typed payload.
type Event struct {
	eventType EventType
	data      any
}

// NewEvent wraps the payload in an Event.
func NewEvent[T any](payload T) Event {
	return Event{eventType: EventTypeOf[T](), data: payload}
}

func (e Event) Type() EventType {
	return e.eventType
}

// Data returns the payload as an any value.
func (e Event) Data() any {
	return e.data
}

// EventData returns the payload of the event if it is of type T.
func EventData[T any](event Event) (T, bool) {
	payload, ok := event.data.(T)
	return payload, ok
}

// EventBus delivers events synchronously to the listeners subscribed to the
// type of the event. Subscriptions are meant to live for a single frame, the
// Engine clears the bus and subscribes its systems again at the start of every frame.
type EventBus struct {
	subscribers map[EventType][]EventListener
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: map[EventType][]EventListener{}}
}

// Subscribe adds the listener for the given event type. Subscribing the same listener
// twice delivers every event twice.
func (b *EventBus) Subscribe(eventType EventType, listener EventListener) {
	b.subscribers[eventType] = append(b.subscribers[eventType], listener)
}

// Publish calls OnEvent of every listener subscribed to the type of the event,
// in order of subscription. Publishing without any subscriber does nothing.
func (b *EventBus) Publish(em *EntityManager, event Event) {
	listeners := b.subscribers[event.eventType]

	for _, listener := range listeners {
		listener.OnEvent(em, event)
	}
}

// Emit publishes the payload to all listeners subscribed to events of type T.
func Emit[T any](bus *EventBus, em *EntityManager, payload T) {
	bus.Publish(em, NewEvent(payload))
}

// Clear removes all subscriptions.
func (b *EventBus) Clear() {
	clear(b.subscribers)
}

// SubscriberCount returns the number of subscriptions for the event type.
func (b *EventBus) SubscriberCount(eventType EventType) int {
	return len(b.subscribers[eventType])
}
