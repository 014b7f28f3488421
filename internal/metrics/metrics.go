package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Store aggregates the in-process counters surfaced on the admin snapshot
// endpoint.
type Store struct {
	OrdersCreated    Counter
	OrdersCancelled  Counter
	PaymentsVerified Counter
	RequestsServed   Counter
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_created":    s.OrdersCreated.Load(),
		"orders_cancelled":  s.OrdersCancelled.Load(),
		"payments_verified": s.PaymentsVerified.Load(),
		"requests_served":   s.RequestsServed.Load(),
	}
}
