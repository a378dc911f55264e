package logi

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
)

// FinishSelection is the id an operator returns to stop adding products.
const FinishSelection int64 = 0

// LoadOperator makes the choices during BuildLoad. The shell implements it
// on top of the console; tests script it.
type LoadOperator interface {
	// ChooseProduct presents the eligible products and returns the chosen id,
	// or FinishSelection to stop.
	ChooseProduct(session *LoadSession, eligible []*EligibleProduct) (int64, error)

	// Rejected reports a selection that did not change the session.
	Rejected(session *LoadSession, productID int64, err error)

	// Accepted reports a product that was added to the session.
	Accepted(session *LoadSession, product *EligibleProduct)
}

// LoadItemFailure records a product whose load item could not be written.
type LoadItemFailure struct {
	ProductID int64
	Err       error
}

// LoadResult summarizes the persistence of a load session.
type LoadResult struct {
	Plate    string
	LoadedAt time.Time
	Total    decimal.Decimal
	Items    []*sqlc.LoadItem
	Failures []LoadItemFailure
}

// Attempted returns the number of products the session tried to persist.
func (r *LoadResult) Attempted() int {
	return len(r.Items) + len(r.Failures)
}

// Succeeded returns the number of load items written.
func (r *LoadResult) Succeeded() int {
	return len(r.Items)
}

// Err returns an error only when nothing could be written.
func (r *LoadResult) Err() error {
	if r.Succeeded() > 0 || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = fmt.Errorf("product %d: %w", f.ProductID, f.Err)
	}
	return fmt.Errorf("no load items were saved: %w", errors.Join(errs...))
}

// StartLoad opens a session for the vehicle with the given plate.
// The vehicle's status is not checked. A zero loadedAt means now; the
// timestamp is truncated to the minute.
func (s *LogiService) StartLoad(plate string, loadedAt time.Time) (*LoadSession, error) {
	plate = FormatPlate(plate)
	vehicle, err := s.database.FindVehicleByPlate(plate)
	if err != nil {
		return nil, fmt.Errorf("finding vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, plate)
	}

	if loadedAt.IsZero() {
		loadedAt = s.clock.Now()
	}
	return NewLoadSession(vehicle, NormalizeLoadTime(loadedAt)), nil
}

// EligibleProducts returns the products that may still be added to the
// session: loadable status, not already in the target load and not
// accepted earlier in this session.
func (s *LogiService) EligibleProducts(session *LoadSession) ([]*EligibleProduct, error) {
	products, err := s.database.ListEligibleProducts(session.Vehicle.Plate, session.LoadedAt, session.AcceptedIDs())
	if err != nil {
		return nil, fmt.Errorf("listing eligible products: %w", err)
	}
	return products, nil
}

// BuildLoad runs the interactive selection loop for one load and then
// persists the accepted products. It returns ErrNothingToLoad or
// ErrNoProductsSelected without writing anything when the session ends empty.
func (s *LogiService) BuildLoad(plate string, loadedAt time.Time, op LoadOperator) (*LoadResult, error) {
	session, err := s.StartLoad(plate, loadedAt)
	if err != nil {
		return nil, err
	}
	s.logger.Info("load session started", "plate", session.Vehicle.Plate, "loaded_at", FormatLoadTime(session.LoadedAt))

	for {
		eligible, err := s.EligibleProducts(session)
		if err != nil {
			return nil, err
		}
		if len(eligible) == 0 {
			if session.Empty() {
				return nil, ErrNothingToLoad
			}
			break
		}

		id, err := op.ChooseProduct(session, eligible)
		if err != nil {
			return nil, fmt.Errorf("choosing product: %w", err)
		}
		if id == FinishSelection {
			if session.Empty() {
				return nil, ErrNoProductsSelected
			}
			break
		}

		product := findEligible(eligible, id)
		if product == nil {
			op.Rejected(session, id, fmt.Errorf("%w: %d", ErrProductNotEligible, id))
			continue
		}
		if err := session.Accept(product); err != nil {
			s.logger.Debug("product rejected", "product_id", id, "error", err)
			op.Rejected(session, id, err)
			continue
		}
		op.Accepted(session, product)
	}

	return s.CommitLoad(session), nil
}

// CommitLoad writes one load item per accepted product. Each insert stands
// alone: a failure is recorded and the remaining products are still written.
func (s *LogiService) CommitLoad(session *LoadSession) *LoadResult {
	result := &LoadResult{
		Plate:    session.Vehicle.Plate,
		LoadedAt: session.LoadedAt,
		Total:    decimal.Zero,
	}

	for _, p := range session.Accepted {
		item, err := s.database.CreateLoadItem(session.Vehicle.Plate, p.ID, session.LoadedAt)
		if err != nil {
			s.logger.Warn("load item not saved", "plate", session.Vehicle.Plate, "product_id", p.ID, "error", err)
			result.Failures = append(result.Failures, LoadItemFailure{ProductID: p.ID, Err: err})
			continue
		}
		result.Items = append(result.Items, item)
		result.Total = result.Total.Add(p.WeightKg)
	}

	s.logger.Info("load saved",
		"plate", result.Plate,
		"loaded_at", FormatLoadTime(result.LoadedAt),
		"saved", result.Succeeded(),
		"accepted", result.Attempted(),
		"total_kg", result.Total.String())
	return result
}

func findEligible(eligible []*EligibleProduct, id int64) *EligibleProduct {
	for _, p := range eligible {
		if p.ID == id {
			return p
		}
	}
	return nil
}
