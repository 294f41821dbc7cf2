package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vuhd/tourbooking/internal/domain"
)

// Notifier receives non-fatal warnings, such as a base count being reduced
// to fit the remaining seat capacity.
type Notifier func(message string)

// Allocation tracks per-category headcounts for one booking session. Base
// counts are charged against the tour's fixed seat inventory; exceed counts
// are overflow beyond it, each head incurring the category's surcharge.
type Allocation struct {
	seats  int
	base   map[string]int
	exceed map[string]int
	notify Notifier
}

type AllocationOption func(*Allocation)

func WithNotifier(n Notifier) AllocationOption {
	return func(a *Allocation) {
		a.notify = n
	}
}

// NewAllocation creates an empty allocation for a tour with the given seat
// capacity. Seats <= 0 means the capacity is unknown and base counts are
// never clamped.
func NewAllocation(seats int, opts ...AllocationOption) *Allocation {
	a := &Allocation{
		seats:  seats,
		base:   make(map[string]int),
		exceed: make(map[string]int),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetBaseCount stores the base headcount for a category. Non-numeric or
// negative input collapses to 0. When the capacity is known, the value is
// clamped so the sum of all base counts never exceeds it; a clamped value is
// still applied, with a warning sent through the notifier.
func (a *Allocation) SetBaseCount(categoryID string, raw any) {
	n := CoerceCount(raw)
	if a.seats > 0 {
		others := 0
		for id, count := range a.base {
			if id != categoryID {
				others += count
			}
		}
		remaining := a.seats - others
		if remaining < 0 {
			remaining = 0
		}
		if n > remaining {
			if a.notify != nil {
				a.notify(fmt.Sprintf("base count exceeds seat capacity, reduced to %d", remaining))
			}
			n = remaining
		}
	}
	a.base[categoryID] = n
}

// SetExceedCount stores the overflow headcount for a category. Overflow is
// over capacity by construction, so it is never clamped against seats.
func (a *Allocation) SetExceedCount(categoryID string, raw any) {
	a.exceed[categoryID] = CoerceCount(raw)
}

func (a *Allocation) BaseCount(categoryID string) int {
	return a.base[categoryID]
}

func (a *Allocation) ExceedCount(categoryID string) int {
	return a.exceed[categoryID]
}

func (a *Allocation) TotalBase() int {
	total := 0
	for _, n := range a.base {
		total += n
	}
	return total
}

func (a *Allocation) TotalExceed() int {
	total := 0
	for _, n := range a.exceed {
		total += n
	}
	return total
}

func (a *Allocation) TotalPeople() int {
	return a.TotalBase() + a.TotalExceed()
}

// SurchargeTotal sums exceed headcount times the category surcharge rate
// across all categories.
func (a *Allocation) SurchargeTotal(c *Catalog) int64 {
	var total int64
	for id, n := range a.exceed {
		total += int64(n) * c.Rate(id)
	}
	return total
}

// SeedFromInvoice replays a persisted invoice's seat rows into the
// allocation, used by the repayment flow. Base counts run through the usual
// clamp rules against the current tour capacity.
func (a *Allocation) SeedFromInvoice(inv *domain.Invoice) {
	for _, e := range inv.SeatFor {
		if e.TypeOfPerson.ID == "" {
			continue
		}
		a.SetBaseCount(e.TypeOfPerson.ID, e.Quantity)
	}
	for _, e := range inv.SeatAddFor {
		if e.TypeOfPerson.ID == "" {
			continue
		}
		a.SetExceedCount(e.TypeOfPerson.ID, e.Quantity)
	}
}

// SeatEntries assembles the invoice seat rows: every tracked base count, and
// only the non-zero exceed counts with their locked-in per-head surcharge.
func (a *Allocation) SeatEntries(c *Catalog) (seatFor, seatAddFor []domain.SeatEntry) {
	for _, cat := range c.All() {
		if n, ok := a.base[cat.ID]; ok && n > 0 {
			seatFor = append(seatFor, domain.SeatEntry{
				TypeOfPerson: domain.PersonTypeRef{ID: cat.ID},
				Quantity:     n,
			})
		}
		if n, ok := a.exceed[cat.ID]; ok && n > 0 {
			seatAddFor = append(seatAddFor, domain.SeatEntry{
				TypeOfPerson:    domain.PersonTypeRef{ID: cat.ID},
				Quantity:        n,
				MoneyMoreForOne: cat.SurchargeRate,
			})
		}
	}
	return seatFor, seatAddFor
}

// CoerceCount turns loosely typed count input into a non-negative integer.
// Anything non-numeric, fractional input aside from whole floats, and
// negative values all collapse to 0.
func CoerceCount(v any) int {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return n
		}
	case int64:
		if n > 0 {
			return int(n)
		}
	case float64:
		if n > 0 && n == float64(int(n)) {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && i > 0 {
			return i
		}
	}
	return 0
}
