package shell

import (
	"fmt"
	"strconv"

	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

func (s *Shell) usersMenu() error {
	return s.loop("Manage Users", "Back", []action{
		{"Add User", s.addUser},
		{"List Users", s.listUsers},
		{"Reset Password", s.resetPassword},
		{"Delete User", s.deleteUser},
	})
}

func (s *Shell) addUser() error {
	var (
		in  logi.UserInput
		err error
	)
	if in.PersonID, err = readID(s.con, "Person id", false); err != nil {
		return err
	}
	if in.Role, err = choose(s.con, "Role", logi.Roles, ""); err != nil {
		return err
	}
	if in.Login, err = s.con.Required("Login: "); err != nil {
		return err
	}
	if in.Password, err = s.newPassword(); err != nil {
		return err
	}
	return s.rec.Record("user add", in.Login, func() error {
		u, err := s.svc.AddUser(in)
		if err != nil {
			return err
		}
		s.con.Printf("User %s added as %s.\n", u.Login, logi.Role(u.Role))
		return nil
	})
}

func (s *Shell) listUsers() error {
	users, err := s.svc.ListUsers()
	if err != nil {
		return err
	}
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{u.Login, logi.Label(u.Role), strconv.FormatInt(u.PersonID, 10), u.Name}
	}
	s.con.Table([]string{"LOGIN", "ROLE", "PERSON", "NAME"}, rows)
	return nil
}

func (s *Shell) resetPassword() error {
	login, err := s.con.Required("Login: ")
	if err != nil {
		return err
	}
	password, err := s.newPassword()
	if err != nil {
		return err
	}
	err = s.rec.Record("user password", login, func() error {
		return s.svc.ResetPassword(login, password)
	})
	if err != nil {
		return err
	}
	s.con.Println("Password reset.")
	return nil
}

func (s *Shell) deleteUser() error {
	login, err := s.con.Required("Login: ")
	if err != nil {
		return err
	}
	if s.user != nil && login == s.user.User.Login {
		return fmt.Errorf("%w: you cannot delete your own login", logi.ErrInUse)
	}
	err = s.rec.Record("user delete", login, func() error {
		return s.svc.RemoveUser(login, func(u *sqlc.User) bool {
			return s.confirm(fmt.Sprintf("Delete login %s (%s)?", u.Login, logi.Role(u.Role)))
		})
	})
	if err != nil {
		return err
	}
	s.con.Println("User deleted.")
	return nil
}

// Register runs the self-service client sign-up.
func (s *Shell) Register() error {
	s.con.Println("\n== Register ==")
	person, err := s.readPerson()
	if err != nil {
		return err
	}
	client, err := s.readClient(0)
	if err != nil {
		return err
	}
	login, err := s.con.Required("Login: ")
	if err != nil {
		return err
	}
	password, err := s.newPassword()
	if err != nil {
		return err
	}

	in := logi.RegistrationInput{Person: person, Client: client, Login: login, Password: password}
	return s.rec.Record("register", login, func() error {
		u, err := s.svc.RegisterClient(in)
		if err != nil {
			return err
		}
		s.con.Printf("Welcome! You can now log in as %s.\n", u.Login)
		return nil
	})
}

// BootstrapAdmin creates the first administrator from console input.
func (s *Shell) BootstrapAdmin() error {
	s.con.Println("== First administrator ==")
	person, err := s.readPerson()
	if err != nil {
		return err
	}
	login, err := s.con.Required("Login: ")
	if err != nil {
		return err
	}
	password, err := s.newPassword()
	if err != nil {
		return err
	}
	return s.rec.Record("user bootstrap", login, func() error {
		u, err := s.svc.BootstrapAdmin(person, login, password)
		if err != nil {
			return err
		}
		s.con.Printf("Administrator %s created.\n", u.Login)
		return nil
	})
}
