package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mattn/go-sqlite3"

	"sislog/internal/database/migrations"
	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

// SQLiteDatabase implements the logi.Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    "",
	}
}

// OpenConnection opens and configures a SQLite database connection.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	// Foreign keys are set in the DSN so every pooled connection gets them.
	dsn := "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", logi.ErrStoreUnavailable, err)
	}

	return db, nil
}

// storeError wraps err with msg and classifies SQLite failures into the
// logi error taxonomy.
func storeError(msg string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w: %v", msg, logi.ErrAlreadyExists, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s: %w: %v", msg, logi.ErrInUse, err)
		case sqlite3.ErrConstraintCheck:
			return fmt.Errorf("%s: %w: %v", msg, logi.ErrInvalidInput, err)
		}
		switch sqliteErr.Code {
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrCorrupt, sqlite3.ErrNotADB, sqlite3.ErrBusy, sqlite3.ErrLocked:
			return fmt.Errorf("%s: %w: %v", msg, logi.ErrStoreUnavailable, err)
		}
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%s: %w: %v", msg, logi.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// withTx runs fn inside a transaction and commits when fn succeeds.
func (s *SQLiteDatabase) withTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("starting transaction", err)
	}
	defer tx.Rollback()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeError("committing transaction", err)
	}
	return nil
}

func toPointers[T any](items []T) []*T {
	result := make([]*T, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result
}

// People, clients, employees and headquarters

func (s *SQLiteDatabase) CreatePerson(address sqlc.InsertAddressParams, person sqlc.InsertPersonParams) (*sqlc.Person, error) {
	ctx := context.Background()
	var created sqlc.Person
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		addr, err := q.InsertAddress(ctx, address)
		if err != nil {
			return storeError("inserting address", err)
		}
		person.AddressID = addr.ID
		created, err = q.InsertPerson(ctx, person)
		if err != nil {
			return storeError("inserting person", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *SQLiteDatabase) FindPersonByID(id int64) (*sqlc.Person, error) {
	p, err := s.queries.GetPerson(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding person", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) FindAddressByID(id int64) (*sqlc.Address, error) {
	a, err := s.queries.GetAddress(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding address", err)
	}
	return &a, nil
}

func (s *SQLiteDatabase) ListPeople() ([]*sqlc.ListPeopleRow, error) {
	rows, err := s.queries.ListPeople(context.Background())
	if err != nil {
		return nil, storeError("listing people", err)
	}
	return toPointers(rows), nil
}

func (s *SQLiteDatabase) CreateClient(params sqlc.InsertClientParams) (*sqlc.Client, error) {
	ctx := context.Background()
	if err := s.queries.InsertClient(ctx, params); err != nil {
		return nil, storeError("inserting client", err)
	}
	c, err := s.queries.GetClient(ctx, params.PersonID)
	if err != nil {
		return nil, storeError("reading client", err)
	}
	return &c, nil
}

func (s *SQLiteDatabase) FindClientByPersonID(personID int64) (*sqlc.Client, error) {
	c, err := s.queries.GetClient(context.Background(), personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding client", err)
	}
	return &c, nil
}

func (s *SQLiteDatabase) ListClients() ([]*sqlc.ListClientsRow, error) {
	rows, err := s.queries.ListClients(context.Background())
	if err != nil {
		return nil, storeError("listing clients", err)
	}
	return toPointers(rows), nil
}

func (s *SQLiteDatabase) CreateEmployee(params sqlc.InsertEmployeeParams) (*sqlc.Employee, error) {
	e, err := s.queries.InsertEmployee(context.Background(), params)
	if err != nil {
		return nil, storeError("inserting employee", err)
	}
	return &e, nil
}

func (s *SQLiteDatabase) FindEmployeeByPersonID(personID int64) (*sqlc.Employee, error) {
	e, err := s.queries.GetEmployee(context.Background(), personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding employee", err)
	}
	return &e, nil
}

func (s *SQLiteDatabase) ListEmployees() ([]*sqlc.ListEmployeesRow, error) {
	rows, err := s.queries.ListEmployees(context.Background())
	if err != nil {
		return nil, storeError("listing employees", err)
	}
	return toPointers(rows), nil
}

func (s *SQLiteDatabase) CreateHeadquarters(address sqlc.InsertAddressParams, hq sqlc.InsertHeadquartersParams) (*sqlc.Headquarters, error) {
	ctx := context.Background()
	var created sqlc.Headquarters
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		addr, err := q.InsertAddress(ctx, address)
		if err != nil {
			return storeError("inserting address", err)
		}
		hq.AddressID = addr.ID
		created, err = q.InsertHeadquarters(ctx, hq)
		if err != nil {
			return storeError("inserting headquarters", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *SQLiteDatabase) FindHeadquartersByID(id int64) (*sqlc.Headquarters, error) {
	hq, err := s.queries.GetHeadquarters(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding headquarters", err)
	}
	return &hq, nil
}

func (s *SQLiteDatabase) ListHeadquarters() ([]*sqlc.ListHeadquartersRow, error) {
	rows, err := s.queries.ListHeadquarters(context.Background())
	if err != nil {
		return nil, storeError("listing headquarters", err)
	}
	return toPointers(rows), nil
}

// Vehicles

func (s *SQLiteDatabase) CreateVehicle(params sqlc.InsertVehicleParams) (*sqlc.Vehicle, error) {
	v, err := s.queries.InsertVehicle(context.Background(), params)
	if err != nil {
		return nil, storeError("inserting vehicle", err)
	}
	return &v, nil
}

func (s *SQLiteDatabase) FindVehicleByPlate(plate string) (*sqlc.Vehicle, error) {
	v, err := s.queries.GetVehicle(context.Background(), plate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding vehicle", err)
	}
	return &v, nil
}

func (s *SQLiteDatabase) ListVehicles(status string) ([]*sqlc.Vehicle, error) {
	ctx := context.Background()
	var (
		vehicles []sqlc.Vehicle
		err      error
	)
	if status == "" {
		vehicles, err = s.queries.ListVehicles(ctx)
	} else {
		vehicles, err = s.queries.ListVehiclesByStatus(ctx, status)
	}
	if err != nil {
		return nil, storeError("listing vehicles", err)
	}
	return toPointers(vehicles), nil
}

func (s *SQLiteDatabase) UpdateVehicle(params sqlc.UpdateVehicleParams) error {
	if err := s.queries.UpdateVehicle(context.Background(), params); err != nil {
		return storeError("updating vehicle", err)
	}
	return nil
}

func (s *SQLiteDatabase) CountVehicleReferences(plate string) (int64, error) {
	ctx := context.Background()
	employees, err := s.queries.CountEmployeesForVehicle(ctx, sql.NullString{String: plate, Valid: true})
	if err != nil {
		return 0, storeError("counting employees for vehicle", err)
	}
	items, err := s.queries.CountLoadItemsForVehicle(ctx, plate)
	if err != nil {
		return 0, storeError("counting load items for vehicle", err)
	}
	return employees + items, nil
}

func (s *SQLiteDatabase) DeleteVehicle(plate string) (bool, error) {
	n, err := s.queries.DeleteVehicle(context.Background(), plate)
	if err != nil {
		return false, storeError("deleting vehicle", err)
	}
	return n > 0, nil
}

// Products and tracking records

func (s *SQLiteDatabase) CreateProduct(tracking sqlc.InsertTrackingRecordParams, product sqlc.InsertProductParams) (*sqlc.Product, error) {
	ctx := context.Background()
	var id int64
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		record, err := q.InsertTrackingRecord(ctx, tracking)
		if err != nil {
			return storeError("inserting tracking record", err)
		}
		product.TrackingID = record.ID
		id, err = q.InsertProduct(ctx, product)
		if err != nil {
			return storeError("inserting product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p, err := s.queries.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError("reading product", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) FindProductByID(id int64) (*sqlc.Product, error) {
	p, err := s.queries.GetProduct(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding product", err)
	}
	return &p, nil
}

func (s *SQLiteDatabase) ListProducts() ([]*sqlc.ListProductsRow, error) {
	rows, err := s.queries.ListProducts(context.Background())
	if err != nil {
		return nil, storeError("listing products", err)
	}
	return toPointers(rows), nil
}

func (s *SQLiteDatabase) ListProductsForPerson(personID int64) ([]*sqlc.ListProductsRow, error) {
	rows, err := s.queries.ListProductsForPerson(context.Background(), sqlc.ListProductsForPersonParams{
		SenderID:    personID,
		RecipientID: personID,
	})
	if err != nil {
		return nil, storeError("listing products for person", err)
	}
	result := make([]*sqlc.ListProductsRow, len(rows))
	for i := range rows {
		row := sqlc.ListProductsRow(rows[i])
		result[i] = &row
	}
	return result, nil
}

func (s *SQLiteDatabase) UpdateProduct(params sqlc.UpdateProductParams) error {
	if err := s.queries.UpdateProduct(context.Background(), params); err != nil {
		return storeError("updating product", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateProductStatus(id int64, status string) error {
	err := s.queries.UpdateProductStatus(context.Background(), sqlc.UpdateProductStatusParams{
		Status: status,
		ID:     id,
	})
	if err != nil {
		return storeError("updating product status", err)
	}
	return nil
}

func (s *SQLiteDatabase) CountProductLoadItems(id int64) (int64, error) {
	n, err := s.queries.CountLoadItemsForProduct(context.Background(), id)
	if err != nil {
		return 0, storeError("counting load items for product", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) DeleteProduct(product *sqlc.Product) error {
	ctx := context.Background()
	return s.withTx(ctx, func(q *sqlc.Queries) error {
		if err := q.DeleteProduct(ctx, product.ID); err != nil {
			return storeError("deleting product", err)
		}
		if err := q.DeleteTrackingRecord(ctx, product.TrackingID); err != nil {
			return storeError("deleting tracking record", err)
		}
		return nil
	})
}

func (s *SQLiteDatabase) FindTrackingRecordByID(id int64) (*sqlc.TrackingRecord, error) {
	t, err := s.queries.GetTrackingRecord(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding tracking record", err)
	}
	return &t, nil
}

func (s *SQLiteDatabase) FindTrackingRecordByCode(code string) (*sqlc.TrackingRecord, error) {
	t, err := s.queries.GetTrackingRecordByCode(context.Background(), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding tracking record", err)
	}
	return &t, nil
}

func (s *SQLiteDatabase) ListTrackingRecords() ([]*sqlc.TrackingRecord, error) {
	rows, err := s.queries.ListTrackingRecords(context.Background())
	if err != nil {
		return nil, storeError("listing tracking records", err)
	}
	return toPointers(rows), nil
}

// Load items

func (s *SQLiteDatabase) ListEligibleProducts(plate string, loadedAt time.Time, exclude []int64) ([]*sqlc.ListEligibleProductsRow, error) {
	rows, err := s.queries.ListEligibleProducts(context.Background(), sqlc.ListEligibleProductsParams{
		VehiclePlate: plate,
		LoadedAt:     loadedAt,
	})
	if err != nil {
		return nil, storeError("listing eligible products", err)
	}

	// Session exclusions are filtered here; an empty NOT IN list is not
	// expressible as a bound parameter.
	result := make([]*sqlc.ListEligibleProductsRow, 0, len(rows))
	for i := range rows {
		if slices.Contains(exclude, rows[i].ID) {
			continue
		}
		result = append(result, &rows[i])
	}
	return result, nil
}

func (s *SQLiteDatabase) CreateLoadItem(plate string, productID int64, loadedAt time.Time) (*sqlc.LoadItem, error) {
	ctx := context.Background()
	id, err := s.queries.InsertLoadItem(ctx, sqlc.InsertLoadItemParams{
		VehiclePlate: plate,
		ProductID:    productID,
		LoadedAt:     loadedAt,
	})
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("inserting load item: %w: %v", logi.ErrDuplicateAssignment, err)
		}
		return nil, storeError("inserting load item", err)
	}

	item, err := s.queries.GetLoadItem(ctx, id)
	if err != nil {
		return nil, storeError("reading load item", err)
	}
	return &item, nil
}

func (s *SQLiteDatabase) FindLoadItemByID(id int64) (*sqlc.LoadItem, error) {
	item, err := s.queries.GetLoadItem(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding load item", err)
	}
	return &item, nil
}

func (s *SQLiteDatabase) ListLoadItems() ([]*sqlc.ListLoadItemsRow, error) {
	rows, err := s.queries.ListLoadItems(context.Background())
	if err != nil {
		return nil, storeError("listing load items", err)
	}
	return toPointers(rows), nil
}

func (s *SQLiteDatabase) ListLoadItemsForVehicle(plate string) ([]*sqlc.ListLoadItemsRow, error) {
	rows, err := s.queries.ListLoadItemsForVehicle(context.Background(), plate)
	if err != nil {
		return nil, storeError("listing load items for vehicle", err)
	}
	result := make([]*sqlc.ListLoadItemsRow, len(rows))
	for i := range rows {
		row := sqlc.ListLoadItemsRow(rows[i])
		result[i] = &row
	}
	return result, nil
}

func (s *SQLiteDatabase) ListLoadItemsAtMinute(plate string, loadedAt time.Time) ([]*sqlc.ListLoadItemsRow, error) {
	rows, err := s.queries.ListLoadItemsAtMinute(context.Background(), sqlc.ListLoadItemsAtMinuteParams{
		VehiclePlate: plate,
		LoadedAt:     loadedAt,
	})
	if err != nil {
		return nil, storeError("listing load", err)
	}
	result := make([]*sqlc.ListLoadItemsRow, len(rows))
	for i := range rows {
		row := sqlc.ListLoadItemsRow(rows[i])
		result[i] = &row
	}
	return result, nil
}

func (s *SQLiteDatabase) CountLoadItemsAt(plate string, loadedAt time.Time) (int64, error) {
	n, err := s.queries.CountLoadItemsAt(context.Background(), sqlc.CountLoadItemsAtParams{
		VehiclePlate: plate,
		LoadedAt:     loadedAt,
	})
	if err != nil {
		return 0, storeError("counting load items", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) DeleteLoadItem(id int64) (bool, error) {
	n, err := s.queries.DeleteLoadItem(context.Background(), id)
	if err != nil {
		return false, storeError("deleting load item", err)
	}
	return n > 0, nil
}

func (s *SQLiteDatabase) DeleteLoadItemsAt(plate string, loadedAt time.Time) (int64, error) {
	n, err := s.queries.DeleteLoadItemsAt(context.Background(), sqlc.DeleteLoadItemsAtParams{
		VehiclePlate: plate,
		LoadedAt:     loadedAt,
	})
	if err != nil {
		return 0, storeError("deleting load", err)
	}
	return n, nil
}

// Users

func (s *SQLiteDatabase) CreateUser(params sqlc.InsertUserParams) (*sqlc.User, error) {
	u, err := s.queries.InsertUser(context.Background(), params)
	if err != nil {
		return nil, storeError("inserting user", err)
	}
	return &u, nil
}

func (s *SQLiteDatabase) RegisterClient(address sqlc.InsertAddressParams, person sqlc.InsertPersonParams, client sqlc.InsertClientParams, user sqlc.InsertUserParams) (*sqlc.User, error) {
	ctx := context.Background()
	var created sqlc.User
	err := s.withTx(ctx, func(q *sqlc.Queries) error {
		addr, err := q.InsertAddress(ctx, address)
		if err != nil {
			return storeError("inserting address", err)
		}
		person.AddressID = addr.ID
		p, err := q.InsertPerson(ctx, person)
		if err != nil {
			return storeError("inserting person", err)
		}
		client.PersonID = p.ID
		if err := q.InsertClient(ctx, client); err != nil {
			return storeError("inserting client", err)
		}
		user.PersonID = p.ID
		created, err = q.InsertUser(ctx, user)
		if err != nil {
			return storeError("inserting user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *SQLiteDatabase) FindUserByLogin(login string) (*sqlc.User, error) {
	u, err := s.queries.GetUser(context.Background(), login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, storeError("finding user", err)
	}
	return &u, nil
}

func (s *SQLiteDatabase) ListUsers() ([]*sqlc.ListUsersRow, error) {
	rows, err := s.queries.ListUsers(context.Background())
	if err != nil {
		return nil, storeError("listing users", err)
	}
	return toPointers(rows), nil
}

func (s *SQLiteDatabase) CountUsersByRole(role string) (int64, error) {
	n, err := s.queries.CountUsersByRole(context.Background(), role)
	if err != nil {
		return 0, storeError("counting users", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) UpdateUserPassword(login, passwordHash string) error {
	err := s.queries.UpdateUserPassword(context.Background(), sqlc.UpdateUserPasswordParams{
		PasswordHash: passwordHash,
		Login:        login,
	})
	if err != nil {
		return storeError("updating password", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteUser(login string) (bool, error) {
	n, err := s.queries.DeleteUser(context.Background(), login)
	if err != nil {
		return false, storeError("deleting user", err)
	}
	return n > 0, nil
}

// Operation tracking

func (s *SQLiteDatabase) CreateOperation(operation, parameters string) (*sqlc.Operation, error) {
	ctx := context.Background()
	startedAt := time.Now().UTC()
	id, err := s.queries.InsertOperation(ctx, sqlc.InsertOperationParams{
		StartedAt:  startedAt,
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, storeError("creating operation", err)
	}
	return &sqlc.Operation{
		ID:         id,
		StartedAt:  startedAt,
		Operation:  operation,
		Parameters: parameters,
		Status:     "running",
	}, nil
}

func (s *SQLiteDatabase) FinishOperation(id int64, status string) error {
	err := s.queries.UpdateOperationFinished(context.Background(), sqlc.UpdateOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return storeError("finishing operation", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(limit int) ([]*sqlc.Operation, error) {
	ops, err := s.queries.ListOperations(context.Background(), int64(limit))
	if err != nil {
		return nil, storeError("listing operations", err)
	}
	return toPointers(ops), nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations returns an error unless the schema is at the latest version.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.Check(s.db)
}

// Migrate applies pending migrations and returns the schema status from
// before they ran.
func (s *SQLiteDatabase) Migrate() (migrations.Status, error) {
	return migrations.Up(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return storeError("backing up database", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements logi.Database interface
var _ logi.Database = (*SQLiteDatabase)(nil)
