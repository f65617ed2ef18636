// Package admission bounds how many synthesis jobs run concurrently.
// Jobs are classified into cost tiers by input text length; each tier owns
// an independent capacity so a flood of cheap requests cannot starve
// expensive ones and vice versa.
package admission

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Tier is a cost class derived from input text length.
type Tier int

const (
	// TierShort covers texts up to 100 characters.
	TierShort Tier = iota
	// TierMedium covers texts up to 300 characters.
	TierMedium
	// TierLong covers everything longer.
	TierLong

	tierCount
)

// Classification thresholds, inclusive on the lower tier.
const (
	shortMaxChars  = 100
	mediumMaxChars = 300
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	default:
		return "unknown"
	}
}

// Classify maps a text length in characters to its tier. It is total:
// negative lengths classify as short.
func Classify(textLength int) Tier {
	switch {
	case textLength <= shortMaxChars:
		return TierShort
	case textLength <= mediumMaxChars:
		return TierMedium
	default:
		return TierLong
	}
}

// Capacities holds the per-tier concurrency bounds.
type Capacities struct {
	Short  int
	Medium int
	Long   int
}

// DefaultCapacities returns the standard 3/2/1 bounds.
func DefaultCapacities() Capacities {
	return Capacities{Short: 3, Medium: 2, Long: 1}
}

func (c Capacities) forTier(t Tier) int {
	switch t {
	case TierShort:
		return c.Short
	case TierMedium:
		return c.Medium
	default:
		return c.Long
	}
}

// Controller admits jobs against per-tier capacity bounds and tracks the
// process-wide in-flight and lifetime counters.
type Controller struct {
	caps Capacities
	sems [tierCount]*semaphore.Weighted

	mu       sync.Mutex
	inFlight int
	lifetime uint64
}

// NewController creates a controller with the given capacities.
// Non-positive capacities are replaced by their defaults so a tier can
// never be unbounded or permanently closed.
func NewController(caps Capacities) *Controller {
	def := DefaultCapacities()
	if caps.Short <= 0 {
		caps.Short = def.Short
	}
	if caps.Medium <= 0 {
		caps.Medium = def.Medium
	}
	if caps.Long <= 0 {
		caps.Long = def.Long
	}

	c := &Controller{caps: caps}
	for t := TierShort; t < tierCount; t++ {
		c.sems[t] = semaphore.NewWeighted(int64(caps.forTier(t)))
	}
	return c
}

// Ticket is one unit of tier capacity. It must be released exactly once;
// Release is safe to call more than once but only the first call returns
// the unit.
type Ticket struct {
	c    *Controller
	tier Tier
	once sync.Once
}

// Tier returns the tier the ticket was acquired from.
func (t *Ticket) Tier() Tier {
	return t.tier
}

// Release returns the capacity unit to its tier and decrements the
// in-flight counter. It never fails; the counter is floored at zero.
func (t *Ticket) Release() {
	t.once.Do(func() {
		t.c.sems[t.tier].Release(1)
		t.c.mu.Lock()
		if t.c.inFlight > 0 {
			t.c.inFlight--
		}
		t.c.mu.Unlock()
	})
}

// Acquire blocks until a capacity unit is available in the tier, then
// increments the in-flight and lifetime counters and returns a ticket.
// It fails only when ctx ends while waiting; no capacity is consumed in
// that case. There is no queue-depth limit on waiters.
func (c *Controller) Acquire(ctx context.Context, tier Tier) (*Ticket, error) {
	if tier < TierShort || tier >= tierCount {
		tier = TierLong
	}
	if err := c.sems[tier].Acquire(ctx, 1); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.inFlight++
	c.lifetime++
	c.mu.Unlock()

	return &Ticket{c: c, tier: tier}, nil
}

// Stats is a point-in-time snapshot of the controller's counters. Fields
// are individually consistent but not captured atomically together.
type Stats struct {
	InFlight       int    `json:"in_flight"`
	LifetimeTotal  uint64 `json:"lifetime_total"`
	CapacityShort  int    `json:"capacity_short"`
	CapacityMedium int    `json:"capacity_medium"`
	CapacityLong   int    `json:"capacity_long"`
}

// Stats returns the current counter snapshot.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		InFlight:       c.inFlight,
		LifetimeTotal:  c.lifetime,
		CapacityShort:  c.caps.Short,
		CapacityMedium: c.caps.Medium,
		CapacityLong:   c.caps.Long,
	}
}

// Capacities returns the configured per-tier bounds.
func (c *Controller) Capacities() Capacities {
	return c.caps
}
