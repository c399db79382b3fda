package broadcast

import (
	"sync"

	"swissclock.ch/swissclock/timeclock"
)

const defaultBuffer = 16

// Broker fans clock events out to subscribers. Publish never blocks; a
// subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan timeclock.Event
	nextID int
	buffer int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker{subs: make(map[int]chan timeclock.Event), buffer: buffer}
}

// Subscribe returns the event channel and a cancel func that closes it.
func (b *Broker) Subscribe() (<-chan timeclock.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan timeclock.Event, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *Broker) Publish(event timeclock.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close disconnects every subscriber.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Fanout publishes each event to every publisher in order.
type Fanout []timeclock.Publisher

func (f Fanout) Publish(event timeclock.Event) {
	for _, p := range f {
		p.Publish(event)
	}
}
