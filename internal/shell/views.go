package shell

import (
	"fmt"

	"sislog/internal/logi"
)

// driverPlate returns the vehicle assigned to the logged-in driver.
func (s *Shell) driverPlate() (string, error) {
	e, err := s.svc.FindEmployee(s.user.Person.ID)
	if err != nil {
		return "", err
	}
	if !e.VehiclePlate.Valid {
		return "", fmt.Errorf("%w: no vehicle is assigned to you", logi.ErrNotFound)
	}
	return e.VehiclePlate.String, nil
}

func (s *Shell) driverShipments() error {
	plate, err := s.driverPlate()
	if err != nil {
		return err
	}
	groups, err := s.svc.VehicleLoads(plate)
	if err != nil {
		return err
	}
	PrintLoadGroups(s.con, groups)
	return nil
}

func (s *Shell) driverShipmentDetail() error {
	plate, err := s.driverPlate()
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

func (s *Shell) clientProducts() error {
	products, err := s.svc.ListProductsForPerson(s.user.Person.ID)
	if err != nil {
		return err
	}
	printProducts(s.con, products)
	return nil
}

func (s *Shell) clientProfile() error {
	p := s.user.Person
	a, err := s.svc.FindAddress(p.AddressID)
	if err != nil {
		return err
	}
	s.con.Printf("Name:    %s\n", p.Name)
	s.con.Printf("Login:   %s\n", s.user.User.Login)
	if p.Email.Valid {
		s.con.Printf("Email:   %s\n", p.Email.String)
	}
	if p.Phone.Valid {
		s.con.Printf("Phone:   %s\n", p.Phone.String)
	}
	s.con.Printf("Address: %s, %s - %s, %s/%s %s\n", a.Street, a.Number, a.District, a.City, a.State, a.PostalCode)
	return nil
}
