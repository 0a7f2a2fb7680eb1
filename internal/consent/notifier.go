package consent

import "sync"

// Notifier is the in-tab signal raised right after the decision is written.
// Delivery is synchronous, on the goroutine that calls Notify.
type Notifier interface {
	Notify()
	Subscribe(fn func()) (cancel func())
}

// Compile-time interface check
var _ Notifier = (*LocalNotifier)(nil)

// LocalNotifier delivers notifications to subscribers in subscription order.
type LocalNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func()
}

// NewLocalNotifier creates a notifier with no subscribers.
func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{}
}

func (n *LocalNotifier) Notify() {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

func (n *LocalNotifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}
