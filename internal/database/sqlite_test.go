package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

// newTestDB creates a new in-memory database with schema applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if _, err := db.db.Exec(Schema); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testAddress() sqlc.InsertAddressParams {
	return sqlc.InsertAddressParams{
		PostalCode: "01310100",
		State:      "SP",
		City:       "Sao Paulo",
		District:   "Bela Vista",
		Street:     "Av Paulista",
		Number:     "1000",
	}
}

func seedVehicle(t *testing.T, db *SQLiteDatabase, plate, capacity string) *sqlc.Vehicle {
	t.Helper()
	v, err := db.CreateVehicle(sqlc.InsertVehicleParams{
		Plate:      plate,
		CapacityKg: decimal.RequireFromString(capacity),
		Category:   "truck",
		Status:     "available",
	})
	if err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}
	return v
}

func seedClient(t *testing.T, db *SQLiteDatabase, name, cpf string) *sqlc.Person {
	t.Helper()
	p, err := db.CreatePerson(testAddress(), sqlc.InsertPersonParams{Name: name})
	if err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}
	_, err = db.CreateClient(sqlc.InsertClientParams{
		PersonID:  p.ID,
		Kind:      "individual",
		Cpf:       sql.NullString{String: cpf, Valid: true},
		BirthDate: sql.NullTime{Time: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	return p
}

func seedProduct(t *testing.T, db *SQLiteDatabase, sender *sqlc.Person, code, weight, status string) *sqlc.Product {
	t.Helper()
	p, err := db.CreateProduct(sqlc.InsertTrackingRecordParams{
		Code:          code,
		RecipientName: sender.Name,
		PostalCode:    "01310100",
		State:         "SP",
		City:          "Sao Paulo",
		District:      "Bela Vista",
		Street:        "Av Paulista",
		Number:        "1000",
	}, sqlc.InsertProductParams{
		WeightKg:    decimal.RequireFromString(weight),
		Status:      status,
		Category:    "standard",
		ArrivedAt:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SenderID:    sender.ID,
		RecipientID: sender.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	return p
}

var loadTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func TestSQLiteDatabase_Vehicles(t *testing.T) {
	t.Run("returns nil when vehicle not found", func(t *testing.T) {
		db := newTestDB(t)

		v, err := db.FindVehicleByPlate("NOPE000")
		if err != nil {
			t.Fatalf("FindVehicleByPlate() error = %v", err)
		}
		if v != nil {
			t.Errorf("FindVehicleByPlate() = %v, want nil", v)
		}
	})

	t.Run("round-trips decimal capacity", func(t *testing.T) {
		db := newTestDB(t)
		seedVehicle(t, db, "ABC1D23", "1250.75")

		v, err := db.FindVehicleByPlate("ABC1D23")
		if err != nil {
			t.Fatalf("FindVehicleByPlate() error = %v", err)
		}
		if v == nil {
			t.Fatal("FindVehicleByPlate() returned nil, want vehicle")
		}
		if !v.CapacityKg.Equal(decimal.RequireFromString("1250.75")) {
			t.Errorf("CapacityKg = %s, want 1250.75", v.CapacityKg)
		}
	})

	t.Run("duplicate plate maps to ErrAlreadyExists", func(t *testing.T) {
		db := newTestDB(t)
		seedVehicle(t, db, "ABC1D23", "100")

		_, err := db.CreateVehicle(sqlc.InsertVehicleParams{
			Plate:      "ABC1D23",
			CapacityKg: decimal.NewFromInt(50),
			Category:   "van",
			Status:     "available",
		})
		if !errors.Is(err, logi.ErrAlreadyExists) {
			t.Errorf("CreateVehicle() error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("lists by status", func(t *testing.T) {
		db := newTestDB(t)
		seedVehicle(t, db, "AAA1A11", "100")
		v := seedVehicle(t, db, "BBB2B22", "100")
		err := db.UpdateVehicle(sqlc.UpdateVehicleParams{
			CapacityKg: v.CapacityKg,
			Category:   v.Category,
			Status:     "unavailable",
			Plate:      v.Plate,
		})
		if err != nil {
			t.Fatalf("UpdateVehicle() error = %v", err)
		}

		all, err := db.ListVehicles("")
		if err != nil {
			t.Fatalf("ListVehicles() error = %v", err)
		}
		if len(all) != 2 {
			t.Errorf("len(ListVehicles(\"\")) = %d, want 2", len(all))
		}

		available, err := db.ListVehicles("available")
		if err != nil {
			t.Fatalf("ListVehicles() error = %v", err)
		}
		if len(available) != 1 || available[0].Plate != "AAA1A11" {
			t.Errorf("ListVehicles(available) = %v, want only AAA1A11", available)
		}
	})

	t.Run("counts references and refuses delete", func(t *testing.T) {
		db := newTestDB(t)
		seedVehicle(t, db, "ABC1D23", "100")
		client := seedClient(t, db, "Ana", "12345678901")
		product := seedProduct(t, db, client, "SRL1", "10", "processing")

		if _, err := db.CreateLoadItem("ABC1D23", product.ID, loadTime); err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}

		refs, err := db.CountVehicleReferences("ABC1D23")
		if err != nil {
			t.Fatalf("CountVehicleReferences() error = %v", err)
		}
		if refs != 1 {
			t.Errorf("CountVehicleReferences() = %d, want 1", refs)
		}

		_, err = db.DeleteVehicle("ABC1D23")
		if !errors.Is(err, logi.ErrInUse) {
			t.Errorf("DeleteVehicle() error = %v, want ErrInUse", err)
		}
	})

	t.Run("deletes unreferenced vehicle", func(t *testing.T) {
		db := newTestDB(t)
		seedVehicle(t, db, "ABC1D23", "100")

		deleted, err := db.DeleteVehicle("ABC1D23")
		if err != nil {
			t.Fatalf("DeleteVehicle() error = %v", err)
		}
		if !deleted {
			t.Error("DeleteVehicle() = false, want true")
		}

		deleted, err = db.DeleteVehicle("ABC1D23")
		if err != nil {
			t.Fatalf("DeleteVehicle() error = %v", err)
		}
		if deleted {
			t.Error("DeleteVehicle() of missing plate = true, want false")
		}
	})
}

func TestSQLiteDatabase_CreateProduct(t *testing.T) {
	t.Run("creates product with tracking record", func(t *testing.T) {
		db := newTestDB(t)
		client := seedClient(t, db, "Ana", "12345678901")

		p := seedProduct(t, db, client, "SRL20240115ABC", "12.5", "processing")

		if !p.WeightKg.Equal(decimal.RequireFromString("12.5")) {
			t.Errorf("WeightKg = %s, want 12.5", p.WeightKg)
		}
		if !p.ArrivedAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("ArrivedAt = %v, want 2024-01-15", p.ArrivedAt)
		}

		record, err := db.FindTrackingRecordByCode("SRL20240115ABC")
		if err != nil {
			t.Fatalf("FindTrackingRecordByCode() error = %v", err)
		}
		if record == nil || record.ID != p.TrackingID {
			t.Errorf("tracking record = %v, want id %d", record, p.TrackingID)
		}
	})

	t.Run("rolls back tracking record when product insert fails", func(t *testing.T) {
		db := newTestDB(t)

		// Sender 99 does not exist, so the product insert fails.
		_, err := db.CreateProduct(sqlc.InsertTrackingRecordParams{
			Code:          "SRL-ORPHAN",
			RecipientName: "Nobody",
			PostalCode:    "01310100",
			State:         "SP",
			City:          "Sao Paulo",
			District:      "Bela Vista",
			Street:        "Av Paulista",
			Number:        "1",
		}, sqlc.InsertProductParams{
			WeightKg:    decimal.NewFromInt(1),
			Status:      "processing",
			Category:    "standard",
			ArrivedAt:   loadTime,
			SenderID:    99,
			RecipientID: 99,
		})
		if err == nil {
			t.Fatal("CreateProduct() expected error, got nil")
		}

		record, err := db.FindTrackingRecordByCode("SRL-ORPHAN")
		if err != nil {
			t.Fatalf("FindTrackingRecordByCode() error = %v", err)
		}
		if record != nil {
			t.Error("tracking record survived a failed product insert")
		}
	})

	t.Run("delete removes tracking record", func(t *testing.T) {
		db := newTestDB(t)
		client := seedClient(t, db, "Ana", "12345678901")
		p := seedProduct(t, db, client, "SRL1", "1", "processing")

		if err := db.DeleteProduct(p); err != nil {
			t.Fatalf("DeleteProduct() error = %v", err)
		}

		record, err := db.FindTrackingRecordByID(p.TrackingID)
		if err != nil {
			t.Fatalf("FindTrackingRecordByID() error = %v", err)
		}
		if record != nil {
			t.Error("tracking record still present after DeleteProduct()")
		}
	})
}

func TestSQLiteDatabase_LoadItems(t *testing.T) {
	setup := func(t *testing.T) (*SQLiteDatabase, []*sqlc.Product) {
		db := newTestDB(t)
		seedVehicle(t, db, "ABC1D23", "100")
		seedVehicle(t, db, "XYZ9K88", "100")
		client := seedClient(t, db, "Ana", "12345678901")
		var products []*sqlc.Product
		for i, status := range []string{"processing", "awaiting_pickup", "in_transit", "processing"} {
			products = append(products, seedProduct(t, db, client, fmt.Sprintf("SRL%d", i), "10", status))
		}
		return db, products
	}

	t.Run("eligible products exclude loaded and ineligible", func(t *testing.T) {
		db, products := setup(t)

		if _, err := db.CreateLoadItem("ABC1D23", products[0].ID, loadTime); err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}

		eligible, err := db.ListEligibleProducts("ABC1D23", loadTime, []int64{products[3].ID})
		if err != nil {
			t.Fatalf("ListEligibleProducts() error = %v", err)
		}
		if len(eligible) != 1 || eligible[0].ID != products[1].ID {
			t.Fatalf("ListEligibleProducts() = %v, want only product %d", eligible, products[1].ID)
		}
		if eligible[0].TrackingCode != "SRL1" {
			t.Errorf("TrackingCode = %q, want SRL1", eligible[0].TrackingCode)
		}

		// The same product stays eligible for another load.
		other, err := db.ListEligibleProducts("XYZ9K88", loadTime, nil)
		if err != nil {
			t.Fatalf("ListEligibleProducts() error = %v", err)
		}
		if len(other) != 3 {
			t.Errorf("len(ListEligibleProducts(other vehicle)) = %d, want 3", len(other))
		}
	})

	t.Run("duplicate assignment is reported", func(t *testing.T) {
		db, products := setup(t)

		if _, err := db.CreateLoadItem("ABC1D23", products[0].ID, loadTime); err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}
		_, err := db.CreateLoadItem("ABC1D23", products[0].ID, loadTime)
		if !errors.Is(err, logi.ErrDuplicateAssignment) {
			t.Errorf("CreateLoadItem() error = %v, want ErrDuplicateAssignment", err)
		}
	})

	t.Run("created item keeps its timestamp", func(t *testing.T) {
		db, products := setup(t)

		item, err := db.CreateLoadItem("ABC1D23", products[0].ID, loadTime)
		if err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}
		if !item.LoadedAt.Equal(loadTime) {
			t.Errorf("LoadedAt = %v, want %v", item.LoadedAt, loadTime)
		}
	})

	t.Run("lists newest load first", func(t *testing.T) {
		db, products := setup(t)
		later := loadTime.Add(time.Hour)

		mustLoad := func(plate string, productID int64, at time.Time) {
			t.Helper()
			if _, err := db.CreateLoadItem(plate, productID, at); err != nil {
				t.Fatalf("CreateLoadItem() error = %v", err)
			}
		}
		mustLoad("XYZ9K88", products[0].ID, loadTime)
		mustLoad("ABC1D23", products[1].ID, loadTime)
		mustLoad("ABC1D23", products[0].ID, later)

		items, err := db.ListLoadItems()
		if err != nil {
			t.Fatalf("ListLoadItems() error = %v", err)
		}
		want := []string{"ABC1D23", "ABC1D23", "XYZ9K88"}
		if len(items) != len(want) {
			t.Fatalf("len(ListLoadItems()) = %d, want %d", len(items), len(want))
		}
		for i, plate := range want {
			if items[i].VehiclePlate != plate {
				t.Errorf("items[%d].VehiclePlate = %s, want %s", i, items[i].VehiclePlate, plate)
			}
		}
		if !items[0].LoadedAt.Equal(later) {
			t.Errorf("items[0].LoadedAt = %v, want %v", items[0].LoadedAt, later)
		}
	})

	t.Run("minute match ignores seconds", func(t *testing.T) {
		db, products := setup(t)
		if _, err := db.CreateLoadItem("ABC1D23", products[0].ID, loadTime); err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}

		items, err := db.ListLoadItemsAtMinute("ABC1D23", loadTime.Add(42*time.Second))
		if err != nil {
			t.Fatalf("ListLoadItemsAtMinute() error = %v", err)
		}
		if len(items) != 1 {
			t.Errorf("len(ListLoadItemsAtMinute()) = %d, want 1", len(items))
		}

		items, err = db.ListLoadItemsAtMinute("ABC1D23", loadTime.Add(time.Minute))
		if err != nil {
			t.Fatalf("ListLoadItemsAtMinute() error = %v", err)
		}
		if len(items) != 0 {
			t.Errorf("len(ListLoadItemsAtMinute(next minute)) = %d, want 0", len(items))
		}
	})

	t.Run("deletes a whole load", func(t *testing.T) {
		db, products := setup(t)
		for _, p := range products[:2] {
			if _, err := db.CreateLoadItem("ABC1D23", p.ID, loadTime); err != nil {
				t.Fatalf("CreateLoadItem() error = %v", err)
			}
		}
		if _, err := db.CreateLoadItem("XYZ9K88", products[0].ID, loadTime); err != nil {
			t.Fatalf("CreateLoadItem() error = %v", err)
		}

		count, err := db.CountLoadItemsAt("ABC1D23", loadTime)
		if err != nil {
			t.Fatalf("CountLoadItemsAt() error = %v", err)
		}
		if count != 2 {
			t.Errorf("CountLoadItemsAt() = %d, want 2", count)
		}

		deleted, err := db.DeleteLoadItemsAt("ABC1D23", loadTime)
		if err != nil {
			t.Fatalf("DeleteLoadItemsAt() error = %v", err)
		}
		if deleted != 2 {
			t.Errorf("DeleteLoadItemsAt() = %d, want 2", deleted)
		}

		remaining, err := db.ListLoadItems()
		if err != nil {
			t.Fatalf("ListLoadItems() error = %v", err)
		}
		if len(remaining) != 1 || remaining[0].VehiclePlate != "XYZ9K88" {
			t.Errorf("remaining = %v, want only the XYZ9K88 item", remaining)
		}
	})
}

func TestSQLiteDatabase_RegisterClient(t *testing.T) {
	t.Run("creates every record", func(t *testing.T) {
		db := newTestDB(t)

		user, err := db.RegisterClient(testAddress(), sqlc.InsertPersonParams{Name: "Ana"},
			sqlc.InsertClientParams{Kind: "individual", Cpf: sql.NullString{String: "12345678901", Valid: true}},
			sqlc.InsertUserParams{Login: "ana", PasswordHash: "hash", Role: "client"})
		if err != nil {
			t.Fatalf("RegisterClient() error = %v", err)
		}

		client, err := db.FindClientByPersonID(user.PersonID)
		if err != nil {
			t.Fatalf("FindClientByPersonID() error = %v", err)
		}
		if client == nil {
			t.Error("FindClientByPersonID() returned nil, want client")
		}
	})

	t.Run("rolls back when login is taken", func(t *testing.T) {
		db := newTestDB(t)
		if _, err := db.RegisterClient(testAddress(), sqlc.InsertPersonParams{Name: "Ana"},
			sqlc.InsertClientParams{Kind: "individual", Cpf: sql.NullString{String: "11111111111", Valid: true}},
			sqlc.InsertUserParams{Login: "ana", PasswordHash: "hash", Role: "client"}); err != nil {
			t.Fatalf("RegisterClient() error = %v", err)
		}

		_, err := db.RegisterClient(testAddress(), sqlc.InsertPersonParams{Name: "Other Ana"},
			sqlc.InsertClientParams{Kind: "individual", Cpf: sql.NullString{String: "22222222222", Valid: true}},
			sqlc.InsertUserParams{Login: "ana", PasswordHash: "hash", Role: "client"})
		if !errors.Is(err, logi.ErrAlreadyExists) {
			t.Fatalf("RegisterClient() error = %v, want ErrAlreadyExists", err)
		}

		people, err := db.ListPeople()
		if err != nil {
			t.Fatalf("ListPeople() error = %v", err)
		}
		if len(people) != 1 {
			t.Errorf("len(ListPeople()) = %d, want 1", len(people))
		}
	})
}

func TestSQLiteDatabase_Operations(t *testing.T) {
	db := newTestDB(t)

	op, err := db.CreateOperation("shipment list", "--grouped")
	if err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}
	if err := db.FinishOperation(op.ID, "success"); err != nil {
		t.Fatalf("FinishOperation() error = %v", err)
	}
	if _, err := db.CreateOperation("shell", ""); err != nil {
		t.Fatalf("CreateOperation() error = %v", err)
	}

	ops, err := db.ListOperations(10)
	if err != nil {
		t.Fatalf("ListOperations() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("len(ListOperations()) = %d, want 2", len(ops))
	}
	if ops[0].Operation != "shell" || ops[0].Status != "running" {
		t.Errorf("ops[0] = %+v, want running shell", ops[0])
	}
	if ops[1].Status != "success" || !ops[1].FinishedAt.Valid {
		t.Errorf("ops[1] = %+v, want finished success", ops[1])
	}
}

func TestSQLiteDatabase_BackupTo(t *testing.T) {
	db := newTestDB(t)
	seedVehicle(t, db, "ABC1D23", "100")

	dest := filepath.Join(t.TempDir(), "backup.db")
	if err := db.BackupTo(dest); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backup, err := NewSQLiteDatabase(dest)
	if err != nil {
		t.Fatalf("NewSQLiteDatabase() error = %v", err)
	}
	defer backup.Close()

	v, err := backup.FindVehicleByPlate("ABC1D23")
	if err != nil {
		t.Fatalf("FindVehicleByPlate() error = %v", err)
	}
	if v == nil {
		t.Error("backup is missing vehicle ABC1D23")
	}
}
