package logi

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sislog/internal/database/sqlc"
)

// AddressInput carries operator-entered address fields.
type AddressInput struct {
	PostalCode string
	State      string
	City       string
	District   string
	Street     string
	Number     string
	Complement string
}

func (a AddressInput) validate() error {
	if len(onlyDigits(a.PostalCode)) != 8 {
		return invalidInput("postal code must have 8 digits: %q", a.PostalCode)
	}
	if len(strings.TrimSpace(a.State)) != 2 {
		return invalidInput("state must be a 2-letter code: %q", a.State)
	}
	for field, v := range map[string]string{"city": a.City, "district": a.District, "street": a.Street, "number": a.Number} {
		if strings.TrimSpace(v) == "" {
			return invalidInput("%s is required", field)
		}
	}
	return nil
}

func (a AddressInput) params() sqlc.InsertAddressParams {
	return sqlc.InsertAddressParams{
		PostalCode: onlyDigits(a.PostalCode),
		State:      strings.ToUpper(strings.TrimSpace(a.State)),
		City:       strings.TrimSpace(a.City),
		District:   strings.TrimSpace(a.District),
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		Complement: nullString(a.Complement),
	}
}

// PersonInput carries operator-entered person fields.
type PersonInput struct {
	Name     string
	Document string
	Phone    string
	Email    string
	Address  AddressInput
}

func (in PersonInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidInput("name is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return invalidInput("invalid email: %q", in.Email)
	}
	return in.Address.validate()
}

func (in PersonInput) params() sqlc.InsertPersonParams {
	return sqlc.InsertPersonParams{
		Name:     strings.TrimSpace(in.Name),
		Document: nullString(in.Document),
		Phone:    nullString(onlyDigits(in.Phone)),
		Email:    nullString(strings.ToLower(in.Email)),
	}
}

// AddPerson stores a person together with their address.
func (s *LogiService) AddPerson(in PersonInput) (*sqlc.Person, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.database.CreatePerson(in.Address.params(), in.params())
	if err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	s.logger.Info("person added", "id", p.ID)
	return p, nil
}

// FindPerson returns the person with the given id.
func (s *LogiService) FindPerson(id int64) (*sqlc.Person, error) {
	p, err := s.database.FindPersonByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: person %d", ErrNotFound, id)
	}
	return p, nil
}

// FindAddress returns the address with the given id.
func (s *LogiService) FindAddress(id int64) (*sqlc.Address, error) {
	a, err := s.database.FindAddressByID(id)
	if err != nil {
		return nil, fmt.Errorf("finding address: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	return a, nil
}

func (s *LogiService) ListPeople() ([]*sqlc.ListPeopleRow, error) {
	people, err := s.database.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

// ClientInput carries operator-entered client fields. Individuals need CPF
// and birth date; companies need CNPJ and company name.
type ClientInput struct {
	PersonID    int64
	Kind        ClientKind
	CPF         string
	BirthDate   time.Time
	CNPJ        string
	CompanyName string
}

func (in ClientInput) validate() error {
	switch in.Kind {
	case ClientIndividual:
		if len(onlyDigits(in.CPF)) != 11 {
			return invalidInput("CPF must have 11 digits: %q", in.CPF)
		}
		if in.BirthDate.IsZero() {
			return invalidInput("birth date is required")
		}
	case ClientCompany:
		if len(onlyDigits(in.CNPJ)) != 14 {
			return invalidInput("CNPJ must have 14 digits: %q", in.CNPJ)
		}
		if strings.TrimSpace(in.CompanyName) == "" {
			return invalidInput("company name is required")
		}
	default:
		return invalidInput("unknown client kind %q", in.Kind)
	}
	return nil
}

func (in ClientInput) params() sqlc.InsertClientParams {
	p := sqlc.InsertClientParams{PersonID: in.PersonID, Kind: string(in.Kind)}
	if in.Kind == ClientIndividual {
		p.Cpf = nullString(onlyDigits(in.CPF))
		p.BirthDate = sql.NullTime{Time: in.BirthDate, Valid: true}
	} else {
		p.Cnpj = nullString(onlyDigits(in.CNPJ))
		p.CompanyName = nullString(in.CompanyName)
	}
	return p
}

// AddClient marks an existing person as a client.
func (s *LogiService) AddClient(in ClientInput) (*sqlc.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.FindPerson(in.PersonID); err != nil {
		return nil, err
	}
	c, err := s.database.CreateClient(in.params())
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	s.logger.Info("client added", "person_id", c.PersonID, "kind", c.Kind)
	return c, nil
}

func (s *LogiService) ListClients() ([]*sqlc.ListClientsRow, error) {
	clients, err := s.database.ListClients()
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// EmployeeInput carries operator-entered employee fields. VehiclePlate and
// HeadquartersID are optional.
type EmployeeInput struct {
	PersonID       int64
	CPF            string
	Department     string
	Position       string
	VehiclePlate   string
	HeadquartersID int64
}

// AddEmployee marks an existing person as an employee. Only drivers may be
// assigned a vehicle.
func (s *LogiService) AddEmployee(in EmployeeInput) (*sqlc.Employee, error) {
	if len(onlyDigits(in.CPF)) != 11 {
		return nil, invalidInput("CPF must have 11 digits: %q", in.CPF)
	}
	if strings.TrimSpace(in.Department) == "" || strings.TrimSpace(in.Position) == "" {
		return nil, invalidInput("department and position are required")
	}
	if _, err := s.FindPerson(in.PersonID); err != nil {
		return nil, err
	}

	position := strings.ToLower(strings.TrimSpace(in.Position))
	params := sqlc.InsertEmployeeParams{
		PersonID:   in.PersonID,
		Cpf:        onlyDigits(in.CPF),
		Department: strings.TrimSpace(in.Department),
		Position:   position,
	}
	if in.VehiclePlate != "" {
		if position != PositionDriver {
			return nil, invalidInput("only drivers can be assigned a vehicle")
		}
		v, err := s.FindVehicle(in.VehiclePlate)
		if err != nil {
			return nil, err
		}
		params.VehiclePlate = sql.NullString{String: v.Plate, Valid: true}
	}
	if in.HeadquartersID != 0 {
		hq, err := s.database.FindHeadquartersByID(in.HeadquartersID)
		if err != nil {
			return nil, fmt.Errorf("finding headquarters: %w", err)
		}
		if hq == nil {
			return nil, fmt.Errorf("%w: headquarters %d", ErrNotFound, in.HeadquartersID)
		}
		params.HeadquartersID = sql.NullInt64{Int64: hq.ID, Valid: true}
	}

	e, err := s.database.CreateEmployee(params)
	if err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}
	s.logger.Info("employee added", "person_id", e.PersonID, "position", e.Position)
	return e, nil
}

// FindEmployee returns the employee record of a person.
func (s *LogiService) FindEmployee(personID int64) (*sqlc.Employee, error) {
	e, err := s.database.FindEmployeeByPersonID(personID)
	if err != nil {
		return nil, fmt.Errorf("finding employee: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: employee %d", ErrNotFound, personID)
	}
	return e, nil
}

func (s *LogiService) ListEmployees() ([]*sqlc.ListEmployeesRow, error) {
	employees, err := s.database.ListEmployees()
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

// HeadquartersInput carries operator-entered headquarters fields.
type HeadquartersInput struct {
	Kind    string
	Phone   string
	Address AddressInput
}

// AddHeadquarters stores a headquarters together with its address.
func (s *LogiService) AddHeadquarters(in HeadquartersInput) (*sqlc.Headquarters, error) {
	if strings.TrimSpace(in.Kind) == "" {
		return nil, invalidInput("headquarters kind is required")
	}
	if err := in.Address.validate(); err != nil {
		return nil, err
	}
	hq, err := s.database.CreateHeadquarters(in.Address.params(), sqlc.InsertHeadquartersParams{
		Kind:  strings.TrimSpace(in.Kind),
		Phone: nullString(onlyDigits(in.Phone)),
	})
	if err != nil {
		return nil, fmt.Errorf("creating headquarters: %w", err)
	}
	s.logger.Info("headquarters added", "id", hq.ID)
	return hq, nil
}

func (s *LogiService) ListHeadquarters() ([]*sqlc.ListHeadquartersRow, error) {
	hqs, err := s.database.ListHeadquarters()
	if err != nil {
		return nil, fmt.Errorf("listing headquarters: %w", err)
	}
	return hqs, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
