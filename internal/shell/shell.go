// Package shell implements the interactive, menu-driven terminal client.
package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sislog/internal/console"
	"sislog/internal/logi"
)

// Recorder runs a mutating action as a recorded operation.
type Recorder interface {
	Record(operation, parameters string, fn func() error) error
}

// NopRecorder runs actions without recording them.
type NopRecorder struct{}

func (NopRecorder) Record(_, _ string, fn func() error) error { return fn() }

// Shell is one interactive session on a console.
type Shell struct {
	con  *console.Console
	svc  *logi.LogiService
	rec  Recorder
	user *logi.UserSession
}

// New creates a Shell. A nil rec records nothing.
func New(con *console.Console, svc *logi.LogiService, rec Recorder) *Shell {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Shell{con: con, svc: svc, rec: rec}
}

// action is one entry of a menu.
type action struct {
	label string
	run   func() error
}

// loop shows a numbered menu until the operator picks 0. Entries are
// numbered from 1 in order.
func (s *Shell) loop(title, back string, actions []action) error {
	items := make([]console.MenuItem, 0, len(actions)+1)
	for i, a := range actions {
		items = append(items, console.MenuItem{Key: fmt.Sprint(i + 1), Label: a.label})
	}
	items = append(items, console.MenuItem{Key: "0", Label: back})

	for {
		choice, err := s.con.Menu(title, items)
		if err != nil {
			return err
		}
		if choice == "0" {
			return nil
		}
		n, _ := strconv.Atoi(choice)
		if err := s.handle(actions[n-1].run()); err != nil {
			return err
		}
	}
}

// handle reports err to the operator. It returns err only when the
// session cannot go on: the input is closed or the store is gone.
func (s *Shell) handle(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, console.ErrClosed), errors.Is(err, logi.ErrStoreUnavailable):
		return err
	case errors.Is(err, logi.ErrCancelled):
		s.con.Println("Cancelled.")
	case errors.Is(err, logi.ErrNothingToLoad), errors.Is(err, logi.ErrNoProductsSelected):
		s.con.Printf("%s; nothing was saved.\n", capitalize(err.Error()))
	default:
		s.con.Printf("Error: %v\n", err)
	}
	return nil
}

// confirm asks a yes/no question. A closed input counts as no; the next
// prompt reports it.
func (s *Shell) confirm(question string) bool {
	ok, err := s.con.Confirm(question)
	return err == nil && ok
}

// Run shows the start menu until the operator exits. A closed input ends
// the session without error.
func (s *Shell) Run() error {
	err := s.loop("SisLog", "Exit", []action{
		{"Login", s.login},
		{"Register", s.Register},
	})
	if errors.Is(err, console.ErrClosed) {
		return nil
	}
	return err
}

func (s *Shell) login() error {
	login, err := s.con.Prompt("Login: ")
	if err != nil {
		return err
	}
	password, err := s.con.Password("Password: ")
	if err != nil {
		return err
	}

	session, err := s.svc.Authenticate(login, password)
	if err != nil {
		return err
	}
	s.user = session
	defer func() { s.user = nil }()

	s.con.Printf("Welcome, %s (%s).\n", session.Person.Name, session.Role)
	title := fmt.Sprintf("Main Menu - %s", session.Role)
	return s.loop(title, "Logout", s.roleActions(session.Role))
}

// roleActions returns the main menu of a role.
func (s *Shell) roleActions(role logi.Role) []action {
	var (
		vehicles     = action{"Manage Vehicles", s.vehiclesMenu}
		products     = action{"Manage Products", s.productsMenu}
		people       = action{"Manage People", s.peopleMenu}
		clients      = action{"Manage Clients", s.clientsMenu}
		employees    = action{"Manage Employees", s.employeesMenu}
		headquarters = action{"Manage Headquarters", s.headquartersMenu}
		shipments    = action{"Manage Shipments", s.shipmentsMenu}
		tracking     = action{"Tracking", s.trackingMenu}
		users        = action{"Manage Users", s.usersMenu}
		password     = action{"Change Password", s.changePassword}
	)

	switch role {
	case logi.RoleAdmin:
		return []action{vehicles, products, people, clients, employees, headquarters, shipments, tracking, users, password}
	case logi.RoleManager:
		return []action{vehicles, products, employees, headquarters, shipments, password}
	case logi.RoleAttendant:
		return []action{people, clients, products, tracking, password}
	case logi.RoleLogisticsAssistant:
		return []action{shipments, password}
	case logi.RoleDriver:
		return []action{{"My Shipments", s.driverShipments}, {"Shipment Details", s.driverShipmentDetail}, password}
	case logi.RoleClient:
		return []action{{"My Products", s.clientProducts}, {"Track Product", s.trackProduct}, {"My Profile", s.clientProfile}, password}
	}
	return []action{password}
}

func (s *Shell) changePassword() error {
	current, err := s.con.Password("Current password: ")
	if err != nil {
		return err
	}
	next, err := s.newPassword()
	if err != nil {
		return err
	}
	login := s.user.User.Login
	err = s.rec.Record("user password", login, func() error {
		return s.svc.ChangePassword(login, current, next)
	})
	if err != nil {
		return err
	}
	s.con.Println("Password changed.")
	return nil
}

// newPassword reads a password twice until both entries match.
func (s *Shell) newPassword() (string, error) {
	for {
		p1, err := s.con.Password("New password: ")
		if err != nil {
			return "", err
		}
		p2, err := s.con.Password("Repeat password: ")
		if err != nil {
			return "", err
		}
		if p1 == p2 {
			return p1, nil
		}
		s.con.Println("  passwords do not match")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
