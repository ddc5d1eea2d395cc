package verification

import (
	"sync"
	"time"
)

// DefaultDebounce is how long a repeated scan of the same code is ignored.
const DefaultDebounce = 2 * time.Second

// Debouncer drops repeated submissions of the same code per scanner.
type Debouncer struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window, now: time.Now, seen: make(map[string]time.Time)}
}

// Allow reports whether code from scanner should be processed. A code seen
// less than the window ago is rejected and does not extend the window.
func (d *Debouncer) Allow(scanner, code string) bool {
	key := scanner + "\x00" + code
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[key] = now

	if len(d.seen) > 1024 {
		for k, t := range d.seen {
			if now.Sub(t) >= d.window {
				delete(d.seen, k)
			}
		}
	}
	return true
}
