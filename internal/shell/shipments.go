package shell

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"sislog/internal/console"
	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

func (s *Shell) shipmentsMenu() error {
	return s.loop("Manage Shipments", "Back", []action{
		{"Add Shipment", s.addShipment},
		{"List Shipments", s.listShipments},
		{"Shipment Details", s.shipmentDetail},
		{"Remove Product from Shipment", s.removeShipmentItem},
		{"Delete Shipment", s.deleteShipment},
	})
}

func (s *Shell) addShipment() error {
	vehicles, err := s.svc.ListVehicles(logi.VehicleAvailable)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		s.con.Println("No available vehicles.")
		return nil
	}
	printVehicles(s.con, vehicles)

	plate, err := s.con.Required("Vehicle plate: ")
	if err != nil {
		return err
	}
	raw, err := s.con.Prompt("Load time (YYYY-MM-DD HH:MM, blank for now): ")
	if err != nil {
		return err
	}
	var loadedAt time.Time
	if raw != "" {
		if loadedAt, err = logi.ParseLoadTime(raw); err != nil {
			s.con.Println("Invalid timestamp; using the current time.")
		}
	}

	var result *logi.LoadResult
	err = s.rec.Record("shipment add", logi.FormatPlate(plate), func() error {
		var err error
		result, err = s.svc.BuildLoad(plate, loadedAt, &consoleOperator{con: s.con})
		if err != nil {
			return err
		}
		return result.Err()
	})
	if result != nil {
		printLoadResult(s.con, result)
	}
	return err
}

func (s *Shell) listShipments() error {
	groups, err := logi.GroupLoads(s.svc.LoadItems())
	if err != nil {
		return err
	}
	PrintLoadGroups(s.con, groups)
	return nil
}

func (s *Shell) shipmentDetail() error {
	plate, err := s.con.Required("Vehicle plate: ")
	if err != nil {
		return err
	}
	loadedAt, err := readLoadTime(s.con, "Load time")
	if err != nil {
		return err
	}
	detail, err := s.svc.LoadDetail(plate, loadedAt)
	if err != nil {
		return err
	}
	PrintLoadDetail(s.con, detail)
	return nil
}

func (s *Shell) removeShipmentItem() error {
	id, err := readID(s.con, "Load item id", false)
	if err != nil {
		return err
	}
	err = s.rec.Record("shipment remove-item", strconv.FormatInt(id, 10), func() error {
		return s.svc.RemoveLoadItem(id, func(item *sqlc.LoadItem) bool {
			return s.confirm(fmt.Sprintf("Remove product %d from shipment %s at %s?",
				item.ProductID, item.VehiclePlate, logi.FormatLoadTime(item.LoadedAt)))
		})
	})
	if err != nil {
		return err
	}
	s.con.Println("Product removed from shipment.")
	return nil
}

func (s *Shell) deleteShipment() error {
	plate, err := s.con.Required("Vehicle plate: ")
	if err != nil {
		return err
	}
	loadedAt, err := readLoadTime(s.con, "Load time")
	if err != nil {
		return err
	}

	var deleted int64
	params := logi.FormatPlate(plate) + " " + logi.FormatLoadTime(loadedAt)
	err = s.rec.Record("shipment delete", params, func() error {
		var err error
		deleted, err = s.svc.RemoveLoad(plate, loadedAt, func(count int64) bool {
			return s.confirm(fmt.Sprintf("Delete shipment %s with %d item(s)?", params, count))
		})
		return err
	})
	if err != nil {
		return err
	}
	s.con.Printf("Shipment deleted: %d item(s) removed.\n", deleted)
	return nil
}

// consoleOperator drives a load session from the console.
type consoleOperator struct {
	con *console.Console
}

func (o *consoleOperator) ChooseProduct(session *logi.LoadSession, eligible []*logi.EligibleProduct) (int64, error) {
	o.con.Printf("\nVehicle %s, load %s: %s of %s kg used, %s kg available.\n",
		session.Vehicle.Plate, logi.FormatLoadTime(session.LoadedAt),
		logi.FormatKg(session.Total), logi.FormatKg(session.Capacity()), logi.FormatKg(session.Headroom()))

	rows := make([][]string, len(eligible))
	for i, p := range eligible {
		rows[i] = []string{
			strconv.FormatInt(p.ID, 10),
			logi.FormatKg(p.WeightKg),
			logi.Label(p.Status),
			logi.Label(p.Category),
			p.TrackingCode,
		}
	}
	o.con.Table([]string{"ID", "WEIGHT (KG)", "STATUS", "CATEGORY", "TRACKING"}, rows)

	return o.con.Int(fmt.Sprintf("Product id (%d to finish): ", logi.FinishSelection))
}

func (o *consoleOperator) Rejected(_ *logi.LoadSession, productID int64, err error) {
	var capErr *logi.CapacityError
	if errors.As(err, &capErr) {
		o.con.Printf("Product %d not added: exceeds capacity by %s kg; %s kg still available.\n",
			productID, logi.FormatKg(capErr.Excess), logi.FormatKg(capErr.Headroom))
		return
	}
	o.con.Printf("Product %d not added: %v\n", productID, err)
}

func (o *consoleOperator) Accepted(session *logi.LoadSession, product *logi.EligibleProduct) {
	o.con.Printf("Product %d added (%s kg). Total: %s of %s kg.\n",
		product.ID, logi.FormatKg(product.WeightKg), logi.FormatKg(session.Total), logi.FormatKg(session.Capacity()))
}

func printLoadResult(c *console.Console, r *logi.LoadResult) {
	for _, f := range r.Failures {
		c.Printf("Product %d not saved: %v\n", f.ProductID, f.Err)
	}
	c.Printf("Shipment %s at %s: %d of %d product(s) saved, %s kg.\n",
		r.Plate, logi.FormatLoadTime(r.LoadedAt), r.Succeeded(), r.Attempted(), logi.FormatKg(r.Total))
}

// PrintLoadGroups writes one block per load: a header line and its items.
func PrintLoadGroups(w printer, groups []*logi.LoadGroup) {
	if len(groups) == 0 {
		w.Println("No shipments.")
		return
	}
	for _, g := range groups {
		w.Printf("\n%s  %s  %d item(s)  %s kg\n", g.Plate, logi.FormatLoadTime(g.LoadedAt), len(g.Items), logi.FormatKg(g.Total))
		w.Table(loadItemHeaders, loadItemRows(g.Items))
	}
}

// PrintLoadItems writes the flat load item listing.
func PrintLoadItems(w printer, items []*logi.LoadItemView) {
	if len(items) == 0 {
		w.Println("No shipments.")
		return
	}
	headers := append([]string{"PLATE", "LOADED AT"}, loadItemHeaders...)
	rows := loadItemRows(items)
	for i, it := range items {
		rows[i] = append([]string{it.VehiclePlate, logi.FormatLoadTime(it.LoadedAt)}, rows[i]...)
	}
	w.Table(headers, rows)
}

// PrintLoadDetail writes the items of one load and its totals.
func PrintLoadDetail(w printer, d *logi.LoadDetail) {
	if d.Count() == 0 {
		w.Printf("No products in shipment %s at %s.\n", d.Plate, logi.FormatLoadTime(d.LoadedAt))
		return
	}
	w.Printf("Shipment %s at %s\n", d.Plate, logi.FormatLoadTime(d.LoadedAt))
	w.Table(loadItemHeaders, loadItemRows(d.Items))
	w.Printf("%d product(s), %s kg\n", d.Count(), logi.FormatKg(d.TotalWeight))
}

// printer is the subset of *console.Console the listings need.
type printer interface {
	Printf(format string, args ...any)
	Println(args ...any)
	Table(headers []string, rows [][]string)
}

var _ printer = (*console.Console)(nil)

var loadItemHeaders = []string{"ITEM", "PRODUCT", "WEIGHT (KG)", "STATUS", "CATEGORY", "TRACKING"}

func loadItemRows(items []*logi.LoadItemView) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{
			strconv.FormatInt(it.ID, 10),
			strconv.FormatInt(it.ProductID, 10),
			logi.FormatKg(it.WeightKg),
			logi.Label(it.Status),
			logi.Label(it.Category),
			it.TrackingCode,
		}
	}
	return rows
}

