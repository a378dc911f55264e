package migrations

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Migrate up
	_, err := Up(db)
	if err != nil {
		t.Fatalf("Up() failed: %v", err)
	}

	// Verify tables were created
	tables := []string{
		"addresses", "people", "clients", "headquarters", "vehicles", "employees",
		"tracking_records", "products", "load_items", "users", "operations", "schema_migrations",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestCheck_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Fresh database should need migration
	err := Check(db)
	if err == nil {
		t.Fatal("Check() expected error for fresh database, got nil")
	}

	// Error should mention needing migration
	if err.Error() != "database has no schema version (needs migration)" {
		t.Errorf("Check() error = %q, want error about needing migration", err.Error())
	}
}

func TestCheck_AfterMigration(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Migrate up
	if _, err := Up(db); err != nil {
		t.Fatalf("Up() failed: %v", err)
	}

	// Status should be OK now
	err := Check(db)
	if err != nil {
		t.Errorf("Check() after migration returned error: %v", err)
	}
}

func TestUp_Idempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Run migration twice
	if _, err := Up(db); err != nil {
		t.Fatalf("First Up() failed: %v", err)
	}

	before, err := Up(db)
	if err != nil {
		t.Errorf("Second Up() failed: %v (should be idempotent)", err)
	}
	if before.Pending() != 0 {
		t.Errorf("Second Up() saw %d pending migrations, want 0", before.Pending())
	}

	// Status should still be OK
	if err := Check(db); err != nil {
		t.Errorf("Check() after double migration returned error: %v", err)
	}
}

func TestReadStatus(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	st, err := ReadStatus(db)
	if err != nil {
		t.Fatalf("ReadStatus() on fresh database failed: %v", err)
	}
	if st.Version != 0 || st.Latest == 0 || st.Dirty {
		t.Errorf("ReadStatus() = %+v, want version 0 with a non-zero latest", st)
	}
	if st.Pending() != st.Latest {
		t.Errorf("Pending() = %d, want %d", st.Pending(), st.Latest)
	}

	before, err := Up(db)
	if err != nil {
		t.Fatalf("Up() failed: %v", err)
	}
	if before != st {
		t.Errorf("Up() returned %+v, want the status before migrating %+v", before, st)
	}

	st, err = ReadStatus(db)
	if err != nil {
		t.Fatalf("ReadStatus() after Up() failed: %v", err)
	}
	if st.Version != st.Latest || st.Pending() != 0 || st.Err() != nil {
		t.Errorf("ReadStatus() after Up() = %+v, want up to date", st)
	}
}

func TestReadStatus_Dirty(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if _, err := Up(db); err != nil {
		t.Fatalf("Up() failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_migrations SET dirty = 1"); err != nil {
		t.Fatalf("Failed to mark schema dirty: %v", err)
	}

	st, err := ReadStatus(db)
	if err != nil {
		t.Fatalf("ReadStatus() failed: %v", err)
	}
	if !st.Dirty {
		t.Errorf("ReadStatus().Dirty = false, want true")
	}
	if err := Check(db); err == nil || !strings.Contains(err.Error(), "dirty") {
		t.Errorf("Check() on dirty database = %v, want dirty state error", err)
	}
}

func TestStatus_Err(t *testing.T) {
	tests := []struct {
		name string
		st   Status
		want string
	}{
		{"up to date", Status{Version: 2, Latest: 2}, ""},
		{"fresh", Status{Latest: 2}, "no schema version"},
		{"behind", Status{Version: 1, Latest: 3}, "2 migrations behind"},
		{"ahead", Status{Version: 4, Latest: 3}, "binary needs update"},
		{"dirty", Status{Version: 2, Latest: 2, Dirty: true}, "dirty state at version 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.st.Err()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Err() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Err() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestForeignKeyConstraints(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Migrate
	if _, err := Up(db); err != nil {
		t.Fatalf("Up() failed: %v", err)
	}

	// Load item pointing at a vehicle and product that don't exist
	_, err := db.Exec(`
		INSERT INTO load_items (vehicle_plate, product_id, loaded_at)
		VALUES ('ABC1D23', 42, '2024-01-15 10:30:00')
	`)

	if err == nil {
		t.Error("Expected foreign key constraint violation, but insert succeeded")
	}
}

func TestSchema_Vehicles(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if _, err := Up(db); err != nil {
		t.Fatalf("Up() failed: %v", err)
	}

	_, err := db.Exec("INSERT INTO vehicles (plate, capacity_kg, category, status) VALUES ('ABC1D23', '100.5', 'truck', 'available')")
	if err != nil {
		t.Fatalf("Failed to insert vehicle: %v", err)
	}

	var capacity string
	err = db.QueryRow("SELECT capacity_kg FROM vehicles WHERE plate = 'ABC1D23'").Scan(&capacity)
	if err != nil {
		t.Errorf("Failed to retrieve vehicle: %v", err)
	}

	if capacity != "100.5" {
		t.Errorf("Retrieved capacity = %q, want %q", capacity, "100.5")
	}

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO vehicles (plate, capacity_kg, category, status) VALUES ('XYZ9K88', '0', 'van', 'available')")
		if err == nil {
			t.Error("Expected check constraint violation for zero capacity, but insert succeeded")
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO vehicles (plate, capacity_kg, category, status) VALUES ('XYZ9K88', '10', 'boat', 'available')")
		if err == nil {
			t.Error("Expected check constraint violation for unknown category, but insert succeeded")
		}
	})
}

func TestSchema_LoadItemUnique(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if _, err := Up(db); err != nil {
		t.Fatalf("Up() failed: %v", err)
	}

	fixtures := []string{
		"INSERT INTO addresses (id, postal_code, state, city, district, street, number) VALUES (1, '01310100', 'SP', 'Sao Paulo', 'Bela Vista', 'Av Paulista', '1000')",
		"INSERT INTO people (id, name, address_id) VALUES (1, 'Ana', 1)",
		"INSERT INTO clients (person_id, kind, cpf, birth_date) VALUES (1, 'individual', '12345678901', '1990-05-01')",
		"INSERT INTO tracking_records (id, code, recipient_name, postal_code, state, city, district, street, number) VALUES (1, 'SRL1', 'Ana', '01310100', 'SP', 'Sao Paulo', 'Bela Vista', 'Av Paulista', '1000')",
		"INSERT INTO products (id, weight_kg, status, category, arrived_at, sender_id, recipient_id, tracking_id) VALUES (1, '10', 'processing', 'standard', '2024-01-15', 1, 1, 1)",
		"INSERT INTO vehicles (plate, capacity_kg, category, status) VALUES ('ABC1D23', '100', 'truck', 'available')",
		"INSERT INTO load_items (vehicle_plate, product_id, loaded_at) VALUES ('ABC1D23', 1, '2024-01-15 10:30:00')",
	}
	for _, stmt := range fixtures {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to insert fixture: %v", err)
		}
	}

	// Same product on the same vehicle at the same instant
	_, err := db.Exec("INSERT INTO load_items (vehicle_plate, product_id, loaded_at) VALUES ('ABC1D23', 1, '2024-01-15 10:30:00')")
	if err == nil {
		t.Error("Expected unique constraint violation for duplicate load item, but insert succeeded")
	}

	// A different load instant is a different load
	_, err = db.Exec("INSERT INTO load_items (vehicle_plate, product_id, loaded_at) VALUES ('ABC1D23', 1, '2024-01-15 11:00:00')")
	if err != nil {
		t.Errorf("Insert into a different load failed: %v", err)
	}
}

// openTestDB opens an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	return db
}
