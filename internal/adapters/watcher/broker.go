package watcher

import (
	"sync"
	"time"
)

const subscriberBuffer = 16

// Batch is one debounced set of changed LESS sources.
type Batch struct {
	Paths []string  `json:"paths"`
	At    time.Time `json:"at"`
}

// Broker fans batches out to subscribers. A subscriber whose buffer is
// full misses the batch rather than blocking the publisher.
type Broker struct {
	mu   sync.Mutex
	subs map[chan Batch]struct{}
	now  func() time.Time
}

// NewBroker creates a broker without subscribers.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Batch]struct{}), now: time.Now}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Batch, func()) {
	ch := make(chan Batch, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish sends paths to every subscriber.
func (b *Broker) Publish(paths []string) {
	batch := Batch{Paths: append([]string(nil), paths...), At: b.now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- batch:
		default:
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
