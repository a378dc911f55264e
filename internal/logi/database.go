package logi

import (
	"time"

	"sislog/internal/database/sqlc"
)

// Database provides an interface for record storage operations.
// Lookups return (nil, nil) when nothing matches. Methods that touch more
// than one table run in a single transaction.
type Database interface {
	// People, clients, employees and headquarters

	// CreatePerson inserts an address and the person living there.
	// person.AddressID is ignored and set from the new address.
	CreatePerson(address sqlc.InsertAddressParams, person sqlc.InsertPersonParams) (*sqlc.Person, error)
	FindPersonByID(id int64) (*sqlc.Person, error)
	FindAddressByID(id int64) (*sqlc.Address, error)
	ListPeople() ([]*sqlc.ListPeopleRow, error)

	CreateClient(params sqlc.InsertClientParams) (*sqlc.Client, error)
	FindClientByPersonID(personID int64) (*sqlc.Client, error)
	ListClients() ([]*sqlc.ListClientsRow, error)

	CreateEmployee(params sqlc.InsertEmployeeParams) (*sqlc.Employee, error)
	FindEmployeeByPersonID(personID int64) (*sqlc.Employee, error)
	ListEmployees() ([]*sqlc.ListEmployeesRow, error)

	// CreateHeadquarters inserts an address and the headquarters at it.
	// hq.AddressID is ignored.
	CreateHeadquarters(address sqlc.InsertAddressParams, hq sqlc.InsertHeadquartersParams) (*sqlc.Headquarters, error)
	FindHeadquartersByID(id int64) (*sqlc.Headquarters, error)
	ListHeadquarters() ([]*sqlc.ListHeadquartersRow, error)

	// Vehicles

	CreateVehicle(params sqlc.InsertVehicleParams) (*sqlc.Vehicle, error)
	FindVehicleByPlate(plate string) (*sqlc.Vehicle, error)
	// ListVehicles returns all vehicles, or only those with the given status
	// when status is non-empty.
	ListVehicles(status string) ([]*sqlc.Vehicle, error)
	UpdateVehicle(params sqlc.UpdateVehicleParams) error
	// CountVehicleReferences counts employees and load items pointing at plate.
	CountVehicleReferences(plate string) (int64, error)
	DeleteVehicle(plate string) (bool, error)

	// Products and tracking records

	// CreateProduct inserts the tracking record and then the product that
	// references it. product.TrackingID is ignored.
	CreateProduct(tracking sqlc.InsertTrackingRecordParams, product sqlc.InsertProductParams) (*sqlc.Product, error)
	FindProductByID(id int64) (*sqlc.Product, error)
	ListProducts() ([]*sqlc.ListProductsRow, error)
	// ListProductsForPerson returns products the person sends or receives.
	ListProductsForPerson(personID int64) ([]*sqlc.ListProductsRow, error)
	// UpdateProduct replaces every editable field. Sender, recipient and
	// tracking record are fixed at creation.
	UpdateProduct(params sqlc.UpdateProductParams) error
	UpdateProductStatus(id int64, status string) error
	CountProductLoadItems(id int64) (int64, error)
	// DeleteProduct removes the product and its tracking record.
	DeleteProduct(product *sqlc.Product) error
	FindTrackingRecordByID(id int64) (*sqlc.TrackingRecord, error)
	FindTrackingRecordByCode(code string) (*sqlc.TrackingRecord, error)
	ListTrackingRecords() ([]*sqlc.TrackingRecord, error)

	// Load items

	// ListEligibleProducts returns products in a loadable status that are
	// neither part of the load (plate, loadedAt) nor listed in exclude.
	ListEligibleProducts(plate string, loadedAt time.Time, exclude []int64) ([]*sqlc.ListEligibleProductsRow, error)
	// CreateLoadItem inserts one load item on its own. A (plate, product,
	// loadedAt) collision yields ErrDuplicateAssignment.
	CreateLoadItem(plate string, productID int64, loadedAt time.Time) (*sqlc.LoadItem, error)
	FindLoadItemByID(id int64) (*sqlc.LoadItem, error)
	// ListLoadItems returns every load item ordered by loaded_at DESC, plate, id.
	ListLoadItems() ([]*sqlc.ListLoadItemsRow, error)
	ListLoadItemsForVehicle(plate string) ([]*sqlc.ListLoadItemsRow, error)
	// ListLoadItemsAtMinute matches loadedAt at minute granularity.
	ListLoadItemsAtMinute(plate string, loadedAt time.Time) ([]*sqlc.ListLoadItemsRow, error)
	// CountLoadItemsAt and DeleteLoadItemsAt match loadedAt exactly.
	CountLoadItemsAt(plate string, loadedAt time.Time) (int64, error)
	DeleteLoadItem(id int64) (bool, error)
	// DeleteLoadItemsAt removes the whole load in one statement.
	DeleteLoadItemsAt(plate string, loadedAt time.Time) (int64, error)

	// Users

	CreateUser(params sqlc.InsertUserParams) (*sqlc.User, error)
	// RegisterClient creates address, person, client and user together.
	// The foreign keys in person, client and user are ignored.
	RegisterClient(address sqlc.InsertAddressParams, person sqlc.InsertPersonParams, client sqlc.InsertClientParams, user sqlc.InsertUserParams) (*sqlc.User, error)
	FindUserByLogin(login string) (*sqlc.User, error)
	ListUsers() ([]*sqlc.ListUsersRow, error)
	CountUsersByRole(role string) (int64, error)
	UpdateUserPassword(login, passwordHash string) error
	DeleteUser(login string) (bool, error)

	// Operation tracking

	CreateOperation(operation, parameters string) (*sqlc.Operation, error)
	FinishOperation(id int64, status string) error
	ListOperations(limit int) ([]*sqlc.Operation, error)

	// BackupTo writes a consistent copy of the database to destPath.
	BackupTo(destPath string) error

	// Close closes the database connection.
	Close() error
}
