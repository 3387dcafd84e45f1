// Package events provides the explicitly constructed lifecycle bus shared by
// the combat core and its presentation-layer subscribers. The bus is passed
// by reference into the components that publish on it; there is no process
// wide registry.
package events

// Event is any lifecycle payload published on the bus.
type Event interface {
	EventName() string
}

// Handler consumes one published event.
type Handler func(Event)

// Bus dispatches events synchronously, in subscribe order, on the caller's
// goroutine. Combat resolution is single-threaded, so no locking is needed;
// construct one bus per battle service.
type Bus struct {
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(name string, h Handler) {
	b.handlers[name] = append(b.handlers[name], h)
}

// SubscribeAll registers a handler for every event published on the bus.
func (b *Bus) SubscribeAll(h Handler) {
	b.handlers[wildcard] = append(b.handlers[wildcard], h)
}

const wildcard = "*"

// Publish delivers the event to all matching handlers. Publishing with no
// subscribers is a no-op.
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers[e.EventName()] {
		h(e)
	}
	for _, h := range b.handlers[wildcard] {
		h(e)
	}
}
