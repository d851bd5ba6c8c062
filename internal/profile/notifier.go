package profile

import "sync"

// Notifier fans out profile updates to subscribers. A slow subscriber only
// ever sees the most recent profile; older pending values are dropped.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Profile
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Profile)}
}

// Subscribe returns a channel of updates and a cancel func that closes it.
func (n *Notifier) Subscribe() (<-chan Profile, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Profile, 1)
	n.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers p to every subscriber without blocking.
func (n *Notifier) Publish(p Profile) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- p:
		default:
			// replace the stale value
			select {
			case <-ch:
			default:
			}
			ch <- p
		}
	}
}
