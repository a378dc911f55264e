package shell

import (
	"strconv"

	"sislog/internal/logi"
)

func (s *Shell) peopleMenu() error {
	return s.loop("Manage People", "Back", []action{
		{"Add Person", s.addPerson},
		{"List People", s.listPeople},
	})
}

func (s *Shell) addPerson() error {
	in, err := s.readPerson()
	if err != nil {
		return err
	}
	return s.rec.Record("person add", in.Name, func() error {
		p, err := s.svc.AddPerson(in)
		if err != nil {
			return err
		}
		s.con.Printf("Person %d added.\n", p.ID)
		return nil
	})
}

func (s *Shell) listPeople() error {
	people, err := s.svc.ListPeople()
	if err != nil {
		return err
	}
	if len(people) == 0 {
		s.con.Println("No people.")
		return nil
	}
	rows := make([][]string, len(people))
	for i, p := range people {
		rows[i] = []string{strconv.FormatInt(p.ID, 10), p.Name, p.Document.String, p.Phone.String, p.Email.String, p.City + "/" + p.State}
	}
	s.con.Table([]string{"ID", "NAME", "DOCUMENT", "PHONE", "EMAIL", "CITY"}, rows)
	return nil
}

func (s *Shell) clientsMenu() error {
	return s.loop("Manage Clients", "Back", []action{
		{"Add Client", s.addClient},
		{"List Clients", s.listClients},
	})
}

func (s *Shell) addClient() error {
	personID, err := readID(s.con, "Person id", false)
	if err != nil {
		return err
	}
	in, err := s.readClient(personID)
	if err != nil {
		return err
	}
	return s.rec.Record("client add", strconv.FormatInt(personID, 10), func() error {
		if _, err := s.svc.AddClient(in); err != nil {
			return err
		}
		s.con.Printf("Person %d is now a client.\n", personID)
		return nil
	})
}

func (s *Shell) listClients() error {
	clients, err := s.svc.ListClients()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		s.con.Println("No clients.")
		return nil
	}
	rows := make([][]string, len(clients))
	for i, c := range clients {
		doc, name := c.Cpf.String, c.Name
		if logi.ClientKind(c.Kind) == logi.ClientCompany {
			doc, name = c.Cnpj.String, c.CompanyName.String
		}
		rows[i] = []string{strconv.FormatInt(c.PersonID, 10), name, logi.Label(c.Kind), doc}
	}
	s.con.Table([]string{"PERSON", "NAME", "TYPE", "CPF/CNPJ"}, rows)
	return nil
}

func (s *Shell) employeesMenu() error {
	return s.loop("Manage Employees", "Back", []action{
		{"Add Employee", s.addEmployee},
		{"List Employees", s.listEmployees},
	})
}

func (s *Shell) addEmployee() error {
	var (
		in  logi.EmployeeInput
		err error
	)
	if in.PersonID, err = readID(s.con, "Person id", false); err != nil {
		return err
	}
	if in.CPF, err = s.con.Required("CPF: "); err != nil {
		return err
	}
	if in.Department, err = s.con.Required("Department: "); err != nil {
		return err
	}
	if in.Position, err = s.con.Required("Position: "); err != nil {
		return err
	}
	if in.VehiclePlate, err = s.con.Prompt("Vehicle plate (drivers only, optional): "); err != nil {
		return err
	}
	if in.HeadquartersID, err = readID(s.con, "Headquarters id (0 for none)", true); err != nil {
		return err
	}
	return s.rec.Record("employee add", strconv.FormatInt(in.PersonID, 10), func() error {
		e, err := s.svc.AddEmployee(in)
		if err != nil {
			return err
		}
		s.con.Printf("Person %d is now an employee (%s).\n", e.PersonID, e.Position)
		return nil
	})
}

func (s *Shell) listEmployees() error {
	employees, err := s.svc.ListEmployees()
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		s.con.Println("No employees.")
		return nil
	}
	rows := make([][]string, len(employees))
	for i, e := range employees {
		plate := "-"
		if e.VehiclePlate.Valid {
			plate = e.VehiclePlate.String
		}
		rows[i] = []string{strconv.FormatInt(e.PersonID, 10), e.Name, e.Cpf, e.Department, e.Position, plate}
	}
	s.con.Table([]string{"PERSON", "NAME", "CPF", "DEPARTMENT", "POSITION", "VEHICLE"}, rows)
	return nil
}

func (s *Shell) headquartersMenu() error {
	return s.loop("Manage Headquarters", "Back", []action{
		{"Add Headquarters", s.addHeadquarters},
		{"List Headquarters", s.listHeadquarters},
	})
}

func (s *Shell) addHeadquarters() error {
	var (
		in  logi.HeadquartersInput
		err error
	)
	if in.Kind, err = s.con.Required("Kind (e.g. branch, warehouse): "); err != nil {
		return err
	}
	if in.Phone, err = s.con.Prompt("Phone (optional): "); err != nil {
		return err
	}
	s.con.Println("-- Address --")
	if in.Address, err = s.readAddress(); err != nil {
		return err
	}
	return s.rec.Record("headquarters add", in.Kind, func() error {
		hq, err := s.svc.AddHeadquarters(in)
		if err != nil {
			return err
		}
		s.con.Printf("Headquarters %d added.\n", hq.ID)
		return nil
	})
}

func (s *Shell) listHeadquarters() error {
	hqs, err := s.svc.ListHeadquarters()
	if err != nil {
		return err
	}
	if len(hqs) == 0 {
		s.con.Println("No headquarters.")
		return nil
	}
	rows := make([][]string, len(hqs))
	for i, hq := range hqs {
		rows[i] = []string{strconv.FormatInt(hq.ID, 10), hq.Kind, hq.Phone.String, hq.Street + ", " + hq.Number, hq.City + "/" + hq.State}
	}
	s.con.Table([]string{"ID", "KIND", "PHONE", "ADDRESS", "CITY"}, rows)
	return nil
}
