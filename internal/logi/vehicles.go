package logi

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
)

// VehicleInput carries operator-entered vehicle fields.
type VehicleInput struct {
	Plate    string
	Capacity decimal.Decimal
	Category VehicleCategory
	Status   VehicleStatus
}

func (in VehicleInput) validate() error {
	if len(FormatPlate(in.Plate)) < 7 {
		return invalidInput("plate must have 7 characters: %q", in.Plate)
	}
	if !in.Capacity.IsPositive() {
		return invalidInput("capacity must be greater than zero")
	}
	if _, err := ParseEnum(string(in.Category), VehicleCategories); err != nil {
		return err
	}
	if _, err := ParseEnum(string(in.Status), VehicleStatuses); err != nil {
		return err
	}
	return nil
}

// AddVehicle registers a new vehicle. The plate must be unique.
func (s *LogiService) AddVehicle(in VehicleInput) (*sqlc.Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v, err := s.database.CreateVehicle(sqlc.InsertVehicleParams{
		Plate:      FormatPlate(in.Plate),
		CapacityKg: in.Capacity,
		Category:   string(in.Category),
		Status:     string(in.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}
	s.logger.Info("vehicle added", "plate", v.Plate, "capacity_kg", v.CapacityKg.String())
	return v, nil
}

// FindVehicle returns the vehicle with the given plate.
func (s *LogiService) FindVehicle(plate string) (*sqlc.Vehicle, error) {
	plate = FormatPlate(plate)
	v, err := s.database.FindVehicleByPlate(plate)
	if err != nil {
		return nil, fmt.Errorf("finding vehicle: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrVehicleNotFound, plate)
	}
	return v, nil
}

// ListVehicles returns all vehicles, or only those with status when it is
// non-empty.
func (s *LogiService) ListVehicles(status VehicleStatus) ([]*sqlc.Vehicle, error) {
	vehicles, err := s.database.ListVehicles(string(status))
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicle replaces capacity, category and status of an existing vehicle.
func (s *LogiService) UpdateVehicle(in VehicleInput) (*sqlc.Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.FindVehicle(in.Plate)
	if err != nil {
		return nil, err
	}
	err = s.database.UpdateVehicle(sqlc.UpdateVehicleParams{
		CapacityKg: in.Capacity,
		Category:   string(in.Category),
		Status:     string(in.Status),
		Plate:      existing.Plate,
	})
	if err != nil {
		return nil, fmt.Errorf("updating vehicle: %w", err)
	}
	s.logger.Info("vehicle updated", "plate", existing.Plate)
	return s.FindVehicle(existing.Plate)
}

// RemoveVehicle deletes a vehicle that no employee or load item refers to.
// A nil confirm skips the prompt.
func (s *LogiService) RemoveVehicle(plate string, confirm func(v *sqlc.Vehicle) bool) error {
	v, err := s.FindVehicle(plate)
	if err != nil {
		return err
	}
	refs, err := s.database.CountVehicleReferences(v.Plate)
	if err != nil {
		return fmt.Errorf("checking vehicle references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: vehicle %s is used by %d employee(s) or load item(s)", ErrInUse, v.Plate, refs)
	}
	if confirm != nil && !confirm(v) {
		return ErrCancelled
	}
	if _, err := s.database.DeleteVehicle(v.Plate); err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}
	s.logger.Info("vehicle removed", "plate", v.Plate)
	return nil
}
