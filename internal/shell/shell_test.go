package shell

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"sislog/internal/console"
	"sislog/internal/database"
	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
	"sislog/internal/testutil"
)

type recordedOp struct {
	operation  string
	parameters string
	err        error
}

type fakeRecorder struct {
	ops []recordedOp
}

func (r *fakeRecorder) Record(operation, parameters string, fn func() error) error {
	err := fn()
	r.ops = append(r.ops, recordedOp{operation, parameters, err})
	return err
}

type harness struct {
	db  *database.SQLiteDatabase
	svc *logi.LogiService
	out *bytes.Buffer
	rec *fakeRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	svc := testutil.NewTestService(t, db)
	_, err := svc.BootstrapAdmin(logi.PersonInput{Name: "Admin", Address: testutil.TestAddressInput()}, "admin", "admin-pass")
	if err != nil {
		t.Fatalf("BootstrapAdmin() error = %v", err)
	}
	return &harness{db: db, svc: svc, out: &bytes.Buffer{}, rec: &fakeRecorder{}}
}

// run feeds lines to a new shell and runs it to completion.
func (h *harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	h.out.Reset()
	con := console.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), h.out)
	if err := New(con, h.svc, h.rec).Run(); err != nil {
		t.Fatalf("Run() error = %v\noutput:\n%s", err, h.out.String())
	}
	return h.out.String()
}

func id(n int64) string { return fmt.Sprint(n) }

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

// Admin main menu: 7 is Manage Shipments.
var adminLogin = []string{"1", "admin", "admin-pass"}

func script(parts ...[]string) []string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

func TestRun_exit(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "0")

	assertContains(t, out, "== SisLog ==", "1 - Login", "2 - Register", "0 - Exit")
}

func TestRun_closedInputEndsSession(t *testing.T) {
	h := newHarness(t)
	con := console.New(strings.NewReader(""), h.out)

	if err := New(con, h.svc, nil).Run(); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

func TestLogin_wrongPassword(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "1", "admin", "nope", "0")

	assertContains(t, out, "Error: invalid login or password")
	if strings.Contains(out, "Main Menu") {
		t.Errorf("main menu shown after failed login:\n%s", out)
	}
}

func TestLogin_roleMenus(t *testing.T) {
	tests := []struct {
		role    logi.Role
		want    []string
		notWant []string
	}{
		{logi.RoleAdmin, []string{"Manage Vehicles", "Manage Shipments", "Manage Users"}, nil},
		{logi.RoleManager, []string{"Manage Vehicles", "Manage Employees", "Manage Shipments"}, []string{"Manage Users", "Manage Clients"}},
		{logi.RoleAttendant, []string{"Manage People", "Manage Clients", "Tracking"}, []string{"Manage Shipments", "Manage Vehicles"}},
		{logi.RoleLogisticsAssistant, []string{"Manage Shipments"}, []string{"Manage Products", "Manage Users"}},
		{logi.RoleDriver, []string{"My Shipments", "Shipment Details"}, []string{"Manage Shipments"}},
		{logi.RoleClient, []string{"My Products", "Track Product", "My Profile"}, []string{"Manage Shipments"}},
	}

	h := newHarness(t)
	for _, tt := range tests {
		labels := make([]string, 0)
		for _, a := range New(nil, h.svc, nil).roleActions(tt.role) {
			labels = append(labels, a.label)
		}
		joined := strings.Join(labels, "|")
		for _, w := range tt.want {
			if !strings.Contains(joined, w) {
				t.Errorf("%s menu missing %q: %v", tt.role, w, labels)
			}
		}
		for _, w := range tt.notWant {
			if strings.Contains(joined, w) {
				t.Errorf("%s menu should not offer %q: %v", tt.role, w, labels)
			}
		}
		if labels[len(labels)-1] != "Change Password" {
			t.Errorf("%s menu last entry = %q, want Change Password", tt.role, labels[len(labels)-1])
		}
	}
}

func TestAddShipment_capacityRejection(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "100")
	sender := testutil.SeedClient(t, h.db, "Maria", "12345678901")
	p1 := testutil.SeedProduct(t, h.db, sender, "40", logi.StatusProcessing)
	p2 := testutil.SeedProduct(t, h.db, sender, "50", logi.StatusAwaitingPickup)
	p3 := testutil.SeedProduct(t, h.db, sender, "30", logi.StatusProcessing)

	out := h.run(t, script(adminLogin, []string{
		"7", "1", "abc1d23", "2024-01-15 10:30",
		id(p1.ID), id(p2.ID), id(p3.ID), "0",
		"0", "0", "0",
	})...)

	assertContains(t, out,
		fmt.Sprintf("Product %d added (40.0 kg). Total: 40.0 of 100.0 kg.", p1.ID),
		fmt.Sprintf("Product %d added (50.0 kg). Total: 90.0 of 100.0 kg.", p2.ID),
		fmt.Sprintf("Product %d not added: exceeds capacity by 20.0 kg; 10.0 kg still available.", p3.ID),
		"Shipment ABC1D23 at 2024-01-15 10:30: 2 of 2 product(s) saved, 90.0 kg.",
	)

	detail, err := h.svc.LoadDetail("ABC1D23", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LoadDetail() error = %v", err)
	}
	if detail.Count() != 2 {
		t.Errorf("saved items = %d, want 2", detail.Count())
	}

	if len(h.rec.ops) != 1 || h.rec.ops[0].operation != "shipment add" || h.rec.ops[0].parameters != "ABC1D23" || h.rec.ops[0].err != nil {
		t.Errorf("recorded ops = %+v", h.rec.ops)
	}
}

func TestAddShipment_invalidSelection(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "100")
	sender := testutil.SeedClient(t, h.db, "Maria", "12345678901")
	p1 := testutil.SeedProduct(t, h.db, sender, "10", logi.StatusProcessing)

	out := h.run(t, script(adminLogin, []string{
		"7", "1", "ABC1D23", "",
		"abc", "999", id(p1.ID), "0",
		"0", "0", "0",
	})...)

	assertContains(t, out,
		`"abc" is not a whole number`,
		"Product 999 not added: invalid selection",
		"1 of 1 product(s) saved, 10.0 kg.",
	)
}

func TestAddShipment_badTimestampFallsBackToNow(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "100")
	sender := testutil.SeedClient(t, h.db, "Maria", "12345678901")
	p1 := testutil.SeedProduct(t, h.db, sender, "10", logi.StatusProcessing)

	out := h.run(t, script(adminLogin, []string{
		"7", "1", "ABC1D23", "15/01/2024",
		id(p1.ID), "0",
		"0", "0", "0",
	})...)

	assertContains(t, out, "Invalid timestamp; using the current time.", "Shipment ABC1D23 at 2024-01-15 10:30:")
}

func TestAddShipment_nothingToLoad(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "100")

	out := h.run(t, script(adminLogin, []string{
		"7", "1", "ABC1D23", "",
		"0", "0", "0",
	})...)

	assertContains(t, out, "Nothing to load; nothing was saved.")
	if !errors.Is(h.rec.ops[0].err, logi.ErrNothingToLoad) {
		t.Errorf("recorded err = %v, want ErrNothingToLoad", h.rec.ops[0].err)
	}
}

func TestAddShipment_unknownVehicle(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "100")

	out := h.run(t, script(adminLogin, []string{
		"7", "1", "ZZZ9Z99", "",
		"0", "0", "0",
	})...)

	assertContains(t, out, "Error: vehicle not found: ZZZ9Z99")
}

var cpfSeq atomic.Int64

func seedLoadItems(t *testing.T, h *harness, plate string, at time.Time, weights ...string) []*sqlc.LoadItem {
	t.Helper()
	sender := testutil.SeedClient(t, h.db, "Sender "+plate, fmt.Sprintf("%011d", cpfSeq.Add(1)))
	var items []*sqlc.LoadItem
	for _, w := range weights {
		p := testutil.SeedProduct(t, h.db, sender, w, logi.StatusProcessing)
		item, err := h.db.CreateLoadItem(plate, p.ID, at)
		if err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}
		items = append(items, item)
	}
	return items
}

func TestShipmentDetail(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "XYZ9Z99", "500")
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	seedLoadItems(t, h, "XYZ9Z99", at, "12.5", "7.25")

	out := h.run(t, script(adminLogin, []string{
		"7", "3", "xyz9z99", "2024-03-01 08:00",
		"3", "XYZ9Z99", "2024-03-02 08:00",
		"3", "XYZ9Z99", "yesterday",
		"0", "0", "0",
	})...)

	assertContains(t, out,
		"Shipment XYZ9Z99 at 2024-03-01 08:00",
		"2 product(s), 19.75 kg",
		"No products in shipment XYZ9Z99 at 2024-03-02 08:00.",
		"timestamp must be YYYY-MM-DD HH:MM",
	)
}

func TestListShipments(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "500")
	seedLoadItems(t, h, "ABC1D23", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), "10", "20")

	out := h.run(t, script(adminLogin, []string{"7", "2", "0", "0", "0"})...)

	assertContains(t, out, "ABC1D23  2024-01-15 10:30  2 item(s)  30.0 kg")
}

func TestDeleteShipment(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "500")
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	seedLoadItems(t, h, "ABC1D23", at, "10", "20")

	out := h.run(t, script(adminLogin, []string{
		"7", "5", "ABC1D23", "2024-01-15 10:30", "n",
		"5", "ABC1D23", "2024-01-15 10:31",
		"5", "ABC1D23", "2024-01-15 10:30", "y",
		"0", "0", "0",
	})...)

	assertContains(t, out,
		"Delete shipment ABC1D23 2024-01-15 10:30 with 2 item(s)? [y/N]: ",
		"Cancelled.",
		"Error: no load found for this vehicle and timestamp: ABC1D23 at 2024-01-15 10:31",
		"Shipment deleted: 2 item(s) removed.",
	)

	detail, err := h.svc.LoadDetail("ABC1D23", at)
	if err != nil {
		t.Fatalf("LoadDetail() error = %v", err)
	}
	if detail.Count() != 0 {
		t.Errorf("items left = %d, want 0", detail.Count())
	}
	if len(h.rec.ops) != 3 || !errors.Is(h.rec.ops[0].err, logi.ErrCancelled) {
		t.Errorf("recorded ops = %+v", h.rec.ops)
	}
}

func TestRemoveShipmentItem(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "500")
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	items := seedLoadItems(t, h, "ABC1D23", at, "10", "20")

	out := h.run(t, script(adminLogin, []string{
		"7", "4", "999",
		"4", id(items[0].ID), "y",
		"0", "0", "0",
	})...)

	assertContains(t, out,
		"Error: load item not found: 999",
		fmt.Sprintf("Remove product %d from shipment ABC1D23 at 2024-01-15 10:30?", items[0].ProductID),
		"Product removed from shipment.",
	)

	detail, _ := h.svc.LoadDetail("ABC1D23", at)
	if detail.Count() != 1 || detail.Items[0].ID != items[1].ID {
		t.Errorf("remaining items = %+v, want only item %d", detail.Items, items[1].ID)
	}
}

func TestAddVehicle(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, script(adminLogin, []string{
		"1", "1", "abc-1d23", "heavy", "1500", "lorry", "4", "1",
		"2",
		"0", "0", "0",
	})...)

	assertContains(t, out, "Vehicle ABC1D23 added.", "pick one of the listed options", "ABC1D23  1500.0")

	v, err := h.svc.FindVehicle("ABC1D23")
	if err != nil {
		t.Fatalf("FindVehicle() error = %v", err)
	}
	if v.Category != string(logi.VehicleTruck) || v.Status != string(logi.VehicleAvailable) || v.CapacityKg.String() != "1500" {
		t.Errorf("vehicle = %+v", v)
	}
}

func TestUpdateVehicle_blankKeepsValues(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "ABC1D23", "100")

	h.run(t, script(adminLogin, []string{
		"1", "4", "ABC1D23", "", "", "2",
		"0", "0", "0",
	})...)

	v, err := h.svc.FindVehicle("ABC1D23")
	if err != nil {
		t.Fatalf("FindVehicle() error = %v", err)
	}
	if v.CapacityKg.String() != "100" || v.Category != string(logi.VehicleTruck) || v.Status != string(logi.VehicleUnavailable) {
		t.Errorf("vehicle = %+v", v)
	}
}

func TestUpdateProduct_blankKeepsValues(t *testing.T) {
	h := newHarness(t)
	sender := testutil.SeedClient(t, h.db, "Maria Souza", "12345678901")
	p := testutil.SeedProduct(t, h.db, sender, "5", logi.StatusProcessing)

	out := h.run(t, script(adminLogin, []string{
		"2", "3", id(p.ID), "", "", "fragile", "", "2024-01-20", "",
		"0", "0", "0",
	})...)

	assertContains(t, out, fmt.Sprintf("Product %d updated.", p.ID))

	got, err := h.svc.FindProduct(p.ID)
	if err != nil {
		t.Fatalf("FindProduct() error = %v", err)
	}
	if got.WeightKg.String() != "5" || got.Status != p.Status || got.Category != string(logi.ProductFragile) {
		t.Errorf("product = %+v", got)
	}
	if !got.ArrivedAt.Equal(p.ArrivedAt) || !got.ExpectedDelivery.Valid || got.ExpectedDelivery.Time.Format(logi.DateLayout) != "2024-01-20" {
		t.Errorf("dates = %v / %v", got.ArrivedAt, got.ExpectedDelivery)
	}
	if len(h.rec.ops) != 1 || h.rec.ops[0].operation != "product update" {
		t.Errorf("recorded ops = %+v", h.rec.ops)
	}
}

var registration = []string{
	"2",
	"Joana Silva", "", "(11) 99999-0000", "joana@example.com",
	"01310-100", "SP", "Sao Paulo", "Bela Vista", "Av Paulista", "1000", "",
	"1", "123.456.789-01", "1992-07-30",
	"joana", "joana-pass", "joana-pass",
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, append(registration, "0")...)

	assertContains(t, out, "Welcome! You can now log in as joana.")
	session, err := h.svc.Authenticate("joana", "joana-pass")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if session.Role != logi.RoleClient || session.Person.Name != "Joana Silva" {
		t.Errorf("session = %+v", session)
	}
}

func TestClientViews(t *testing.T) {
	h := newHarness(t)
	h.run(t, append(registration, "0")...)

	out := h.run(t, "1", "joana", "joana-pass", "1", "3", "0", "0")

	assertContains(t, out, "Main Menu - Client", "No products.", "Name:    Joana Silva", "Email:   joana@example.com")
}

func TestDriverShipments(t *testing.T) {
	h := newHarness(t)
	testutil.SeedVehicle(t, h.db, "DRV1A23", "500")
	testutil.SeedVehicle(t, h.db, "OTH9Z99", "500")
	driver := testutil.SeedPerson(t, h.db, "Carlos")
	testutil.SeedEmployee(t, h.db, driver, "98765432100", logi.PositionDriver, "DRV1A23")
	if _, err := h.svc.AddUser(logi.UserInput{Login: "carlos", Password: "carlos-pass", PersonID: driver.ID, Role: logi.RoleDriver}); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	seedLoadItems(t, h, "DRV1A23", time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), "5")
	seedLoadItems(t, h, "OTH9Z99", time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), "7", "8")

	out := h.run(t, "1", "carlos", "carlos-pass", "1", "0", "0")

	assertContains(t, out, "DRV1A23  2024-02-01 09:00  1 item(s)  5.0 kg")
	if strings.Contains(out, "OTH9Z99") {
		t.Errorf("driver sees another vehicle's shipment:\n%s", out)
	}
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t)

	h.run(t, script(adminLogin, []string{"10", "admin-pass", "new-secret", "typo", "new-secret", "new-secret", "0", "0"})...)

	if _, err := h.svc.Authenticate("admin", "new-secret"); err != nil {
		t.Errorf("Authenticate() with new password error = %v", err)
	}
}
