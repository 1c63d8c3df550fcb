package order

import "sync"

// Notifier delivers "orders of this restaurant changed" signals.
// Signals are coalesced: a subscriber that is busy sees at most one pending
// signal.
type Notifier interface {
	Subscribe(restaurantID int64) (<-chan struct{}, func())
}

// MemoryNotifier fans signals out to in-process subscribers.
type MemoryNotifier struct {
	mu   sync.Mutex
	subs map[int64]map[chan struct{}]struct{}
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[int64]map[chan struct{}]struct{})}
}

func (n *MemoryNotifier) Subscribe(restaurantID int64) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.subs[restaurantID] == nil {
		n.subs[restaurantID] = make(map[chan struct{}]struct{})
	}
	n.subs[restaurantID][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs[restaurantID], ch)
			if len(n.subs[restaurantID]) == 0 {
				delete(n.subs, restaurantID)
			}
		})
	}
}

func (n *MemoryNotifier) Notify(restaurantID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs[restaurantID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// NotifyAll signals every current subscriber.
func (n *MemoryNotifier) NotifyAll() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, subs := range n.subs {
		for ch := range subs {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}
