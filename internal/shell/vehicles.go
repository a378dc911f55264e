package shell

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sislog/internal/console"
	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

func (s *Shell) vehiclesMenu() error {
	return s.loop("Manage Vehicles", "Back", []action{
		{"Add Vehicle", s.addVehicle},
		{"List Vehicles", func() error { return s.listVehicles("") }},
		{"List Available Vehicles", func() error { return s.listVehicles(logi.VehicleAvailable) }},
		{"Update Vehicle", s.updateVehicle},
		{"Delete Vehicle", s.deleteVehicle},
	})
}

func (s *Shell) addVehicle() error {
	in, err := s.readVehicle(nil)
	if err != nil {
		return err
	}
	var v *sqlc.Vehicle
	err = s.rec.Record("vehicle add", logi.FormatPlate(in.Plate), func() error {
		var err error
		v, err = s.svc.AddVehicle(in)
		return err
	})
	if err != nil {
		return err
	}
	s.con.Printf("Vehicle %s added.\n", v.Plate)
	return nil
}

// readVehicle prompts for vehicle fields. With an existing vehicle the
// plate is fixed and blank answers keep the current values.
func (s *Shell) readVehicle(existing *sqlc.Vehicle) (logi.VehicleInput, error) {
	var (
		in  logi.VehicleInput
		err error

		capacity = decimal.Zero
		category logi.VehicleCategory
		status   logi.VehicleStatus
	)
	if existing != nil {
		in.Plate = existing.Plate
		capacity = existing.CapacityKg
		category = logi.VehicleCategory(existing.Category)
		status = logi.VehicleStatus(existing.Status)
	} else if in.Plate, err = s.con.Required("Plate: "); err != nil {
		return in, err
	}

	if in.Capacity, err = readKg(s.con, "Capacity (kg)", capacity); err != nil {
		return in, err
	}
	if in.Category, err = choose(s.con, "Category", logi.VehicleCategories, category); err != nil {
		return in, err
	}
	in.Status, err = choose(s.con, "Status", logi.VehicleStatuses, status)
	return in, err
}

func (s *Shell) listVehicles(status logi.VehicleStatus) error {
	vehicles, err := s.svc.ListVehicles(status)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		s.con.Println("No vehicles.")
		return nil
	}
	printVehicles(s.con, vehicles)
	return nil
}

func (s *Shell) updateVehicle() error {
	plate, err := s.con.Required("Plate: ")
	if err != nil {
		return err
	}
	existing, err := s.svc.FindVehicle(plate)
	if err != nil {
		return err
	}
	in, err := s.readVehicle(existing)
	if err != nil {
		return err
	}
	return s.rec.Record("vehicle update", existing.Plate, func() error {
		v, err := s.svc.UpdateVehicle(in)
		if err != nil {
			return err
		}
		s.con.Printf("Vehicle %s updated.\n", v.Plate)
		return nil
	})
}

func (s *Shell) deleteVehicle() error {
	plate, err := s.con.Required("Plate: ")
	if err != nil {
		return err
	}
	err = s.rec.Record("vehicle delete", logi.FormatPlate(plate), func() error {
		return s.svc.RemoveVehicle(plate, func(v *sqlc.Vehicle) bool {
			return s.confirm(fmt.Sprintf("Delete %s %s (%s kg)?", logi.Label(v.Category), v.Plate, logi.FormatKg(v.CapacityKg)))
		})
	})
	if err != nil {
		return err
	}
	s.con.Println("Vehicle deleted.")
	return nil
}

func printVehicles(c *console.Console, vehicles []*sqlc.Vehicle) {
	rows := make([][]string, len(vehicles))
	for i, v := range vehicles {
		rows[i] = []string{v.Plate, logi.FormatKg(v.CapacityKg), logi.Label(v.Category), logi.Label(v.Status)}
	}
	c.Table([]string{"PLATE", "CAPACITY (KG)", "CATEGORY", "STATUS"}, rows)
}
