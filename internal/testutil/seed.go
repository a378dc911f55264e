package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

var trackingSeq atomic.Int64

// TestAddress returns a valid address for seeding.
func TestAddress() sqlc.InsertAddressParams {
	return sqlc.InsertAddressParams{
		PostalCode: "01310100",
		State:      "SP",
		City:       "Sao Paulo",
		District:   "Bela Vista",
		Street:     "Av Paulista",
		Number:     "1000",
	}
}

// TestAddressInput is TestAddress in the form the service accepts.
func TestAddressInput() logi.AddressInput {
	return logi.AddressInput{
		PostalCode: "01310-100",
		State:      "sp",
		City:       "Sao Paulo",
		District:   "Bela Vista",
		Street:     "Av Paulista",
		Number:     "1000",
	}
}

// SeedVehicle inserts an available truck with the given capacity in kg.
func SeedVehicle(t *testing.T, db logi.Database, plate, capacity string) *sqlc.Vehicle {
	t.Helper()
	v, err := db.CreateVehicle(sqlc.InsertVehicleParams{
		Plate:      plate,
		CapacityKg: decimal.RequireFromString(capacity),
		Category:   string(logi.VehicleTruck),
		Status:     string(logi.VehicleAvailable),
	})
	if err != nil {
		t.Fatalf("CreateVehicle() error = %v", err)
	}
	return v
}

// SeedPerson inserts a person living at TestAddress.
func SeedPerson(t *testing.T, db logi.Database, name string) *sqlc.Person {
	t.Helper()
	p, err := db.CreatePerson(TestAddress(), sqlc.InsertPersonParams{Name: name})
	if err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}
	return p
}

// SeedClient inserts a person and makes them an individual client.
func SeedClient(t *testing.T, db logi.Database, name, cpf string) *sqlc.Person {
	t.Helper()
	p := SeedPerson(t, db, name)
	_, err := db.CreateClient(sqlc.InsertClientParams{
		PersonID:  p.ID,
		Kind:      string(logi.ClientIndividual),
		Cpf:       sql.NullString{String: cpf, Valid: true},
		BirthDate: sql.NullTime{Time: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	})
	if err != nil {
		t.Fatalf("CreateClient() error = %v", err)
	}
	return p
}

// SeedEmployee makes an existing person an employee with the given position.
func SeedEmployee(t *testing.T, db logi.Database, person *sqlc.Person, cpf, position, plate string) *sqlc.Employee {
	t.Helper()
	params := sqlc.InsertEmployeeParams{
		PersonID:   person.ID,
		Cpf:        cpf,
		Department: "operations",
		Position:   position,
	}
	if plate != "" {
		params.VehiclePlate = sql.NullString{String: plate, Valid: true}
	}
	e, err := db.CreateEmployee(params)
	if err != nil {
		t.Fatalf("CreateEmployee() error = %v", err)
	}
	return e
}

// SeedProduct inserts a standard product sent by and addressed to sender.
func SeedProduct(t *testing.T, db logi.Database, sender *sqlc.Person, weight string, status logi.DeliveryStatus) *sqlc.Product {
	t.Helper()
	addr := TestAddress()
	p, err := db.CreateProduct(sqlc.InsertTrackingRecordParams{
		Code:          fmt.Sprintf("SRLTEST%06d", trackingSeq.Add(1)),
		RecipientName: sender.Name,
		PostalCode:    addr.PostalCode,
		State:         addr.State,
		City:          addr.City,
		District:      addr.District,
		Street:        addr.Street,
		Number:        addr.Number,
	}, sqlc.InsertProductParams{
		WeightKg:    decimal.RequireFromString(weight),
		Status:      string(status),
		Category:    string(logi.ProductStandard),
		ArrivedAt:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		SenderID:    sender.ID,
		RecipientID: sender.ID,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	return p
}
