package events

import (
	"sync"

	"fashniz-be/internal/metrics"
)

// Topics published by the storefront.
const (
	TopicCartUpdated     = "cart.updated"
	TopicWishlistUpdated = "wishlist.updated"
	TopicOrderPlaced     = "order.placed"
)

type Event struct {
	Topic   string
	Payload any
}

// Bus is a small in-process pub/sub hub. Publish never blocks: a subscriber
// whose buffer is full loses the event, which is counted in metrics.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]chan Event)}
}

func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- Event{Topic: topic, Payload: payload}:
		default:
			metrics.EventsDropped.Inc()
		}
	}
}

// Subscribe registers a buffered subscriber for topic. The returned cancel
// removes the subscription and closes the channel.
func (b *Bus) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[topic]
		for i, c := range subs {
			if c == ch {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}

	return ch, cancel
}
