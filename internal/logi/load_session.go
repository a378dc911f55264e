package logi

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
)

// EligibleProduct is a product that may still be added to the load being built.
type EligibleProduct = sqlc.ListEligibleProductsRow

// LoadSession holds the products accepted for one load while it is being
// built. Nothing is written until the session is committed.
type LoadSession struct {
	Vehicle  *sqlc.Vehicle
	LoadedAt time.Time
	Accepted []*EligibleProduct
	Total    decimal.Decimal
}

// NewLoadSession starts an empty session for vehicle at loadedAt.
func NewLoadSession(vehicle *sqlc.Vehicle, loadedAt time.Time) *LoadSession {
	return &LoadSession{
		Vehicle:  vehicle,
		LoadedAt: loadedAt,
		Total:    decimal.Zero,
	}
}

// Capacity returns the vehicle's capacity in kilograms.
func (s *LoadSession) Capacity() decimal.Decimal {
	return s.Vehicle.CapacityKg
}

// Headroom returns the weight that can still be added.
func (s *LoadSession) Headroom() decimal.Decimal {
	return s.Capacity().Sub(s.Total)
}

// Empty reports whether no product has been accepted yet.
func (s *LoadSession) Empty() bool {
	return len(s.Accepted) == 0
}

// AcceptedIDs returns the ids of the accepted products in acceptance order.
func (s *LoadSession) AcceptedIDs() []int64 {
	ids := make([]int64, len(s.Accepted))
	for i, p := range s.Accepted {
		ids[i] = p.ID
	}
	return ids
}

// Accept adds p to the session if the running total stays within capacity.
// A total exactly equal to capacity is accepted.
func (s *LoadSession) Accept(p *EligibleProduct) error {
	if slices.Contains(s.AcceptedIDs(), p.ID) {
		return fmt.Errorf("%w: product %d", ErrDuplicateAssignment, p.ID)
	}

	candidate := s.Total.Add(p.WeightKg)
	if candidate.GreaterThan(s.Capacity()) {
		return &CapacityError{
			ProductID: p.ID,
			Weight:    p.WeightKg,
			Capacity:  s.Capacity(),
			Excess:    candidate.Sub(s.Capacity()),
			Headroom:  s.Headroom(),
		}
	}

	s.Accepted = append(s.Accepted, p)
	s.Total = candidate
	return nil
}
