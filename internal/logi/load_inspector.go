package logi

import (
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
)

// LoadItemView is a load item joined with its product and tracking code.
type LoadItemView = sqlc.ListLoadItemsRow

// LoadGroup is the set of load items sharing a plate and timestamp.
type LoadGroup struct {
	Plate    string
	LoadedAt time.Time
	Items    []*LoadItemView
	Total    decimal.Decimal
}

// LoadDetail is the content of one load with its totals.
type LoadDetail struct {
	Plate       string
	LoadedAt    time.Time
	Items       []*LoadItemView
	TotalWeight decimal.Decimal
}

// Count returns the number of items in the load.
func (d *LoadDetail) Count() int {
	return len(d.Items)
}

// LoadItems returns every load item, newest load first, then by plate and
// item id. The store is queried when iteration starts, so the sequence can
// be ranged over again to get a fresh listing.
func (s *LogiService) LoadItems() iter.Seq2[*LoadItemView, error] {
	return func(yield func(*LoadItemView, error) bool) {
		rows, err := s.database.ListLoadItems()
		if err != nil {
			yield(nil, fmt.Errorf("listing load items: %w", err))
			return
		}
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

// GroupLoads folds an ordered item sequence into loads. Items of one load
// must be adjacent, which holds for LoadItems.
func GroupLoads(items iter.Seq2[*LoadItemView, error]) ([]*LoadGroup, error) {
	var groups []*LoadGroup
	var current *LoadGroup
	for item, err := range items {
		if err != nil {
			return nil, err
		}
		if current == nil || current.Plate != item.VehiclePlate || !current.LoadedAt.Equal(item.LoadedAt) {
			current = &LoadGroup{Plate: item.VehiclePlate, LoadedAt: item.LoadedAt, Total: decimal.Zero}
			groups = append(groups, current)
		}
		current.Items = append(current.Items, item)
		current.Total = current.Total.Add(item.WeightKg)
	}
	return groups, nil
}

// LoadDetail returns the items loaded on plate at loadedAt, compared at
// minute granularity. An empty load is not an error.
func (s *LogiService) LoadDetail(plate string, loadedAt time.Time) (*LoadDetail, error) {
	plate = FormatPlate(plate)
	loadedAt = NormalizeLoadTime(loadedAt)
	rows, err := s.database.ListLoadItemsAtMinute(plate, loadedAt)
	if err != nil {
		return nil, fmt.Errorf("listing load: %w", err)
	}

	detail := &LoadDetail{
		Plate:       plate,
		LoadedAt:    loadedAt,
		Items:       rows,
		TotalWeight: decimal.Zero,
	}
	for _, row := range rows {
		detail.TotalWeight = detail.TotalWeight.Add(row.WeightKg)
	}
	return detail, nil
}

// VehicleLoads returns the loads of one vehicle, newest first.
func (s *LogiService) VehicleLoads(plate string) ([]*LoadGroup, error) {
	rows, err := s.database.ListLoadItemsForVehicle(FormatPlate(plate))
	if err != nil {
		return nil, fmt.Errorf("listing vehicle loads: %w", err)
	}
	return GroupLoads(func(yield func(*LoadItemView, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	})
}

// FindLoadItem returns the load item with the given id.
func (s *LogiService) FindLoadItem(id int64) (*sqlc.LoadItem, error) {
	item, err := s.database.FindLoadItemByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding load item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return item, nil
}

// RemoveLoadItem deletes a single load item after confirm approves it.
// A nil confirm skips the prompt.
func (s *LogiService) RemoveLoadItem(id int64, confirm func(item *sqlc.LoadItem) bool) error {
	item, err := s.FindLoadItem(id)
	if err != nil {
		return err
	}
	if confirm != nil && !confirm(item) {
		return ErrCancelled
	}

	deleted, err := s.database.DeleteLoadItem(id)
	if err != nil {
		return fmt.Errorf("deleting load item: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}

	s.logger.Info("load item removed", "id", id, "plate", item.VehiclePlate, "product_id", item.ProductID)
	return nil
}

// RemoveLoad deletes every item of the load (plate, loadedAt) in one
// statement. loadedAt's wall-clock reading must match the stored time
// exactly. confirm receives the number of items about to be deleted; a nil
// confirm skips the prompt.
func (s *LogiService) RemoveLoad(plate string, loadedAt time.Time, confirm func(count int64) bool) (int64, error) {
	plate = FormatPlate(plate)
	loadedAt = asStoredZone(loadedAt)
	count, err := s.database.CountLoadItemsAt(plate, loadedAt)
	if err != nil {
		return 0, fmt.Errorf("counting load items: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s at %s", ErrLoadNotFound, plate, FormatLoadTime(loadedAt))
	}
	if confirm != nil && !confirm(count) {
		return 0, ErrCancelled
	}

	deleted, err := s.database.DeleteLoadItemsAt(plate, loadedAt)
	if err != nil {
		return 0, fmt.Errorf("deleting load: %w", err)
	}
	if deleted == 0 {
		return 0, fmt.Errorf("%w: %s at %s", ErrLoadNotFound, plate, FormatLoadTime(loadedAt))
	}

	s.logger.Info("load removed", "plate", plate, "loaded_at", FormatLoadTime(loadedAt), "items", deleted)
	return deleted, nil
}
