package logi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sislog/internal/database/sqlc"
)

const minPasswordLength = 8

var loginPattern = regexp.MustCompile(`^[a-z0-9._-]{3,32}$`)

// UserSession is an authenticated user together with the person behind it.
type UserSession struct {
	User   *sqlc.User
	Person *sqlc.Person
	Role   Role
}

// UserInput carries the fields of a new login.
type UserInput struct {
	Login    string
	Password string
	PersonID int64
	Role     Role
}

// RegistrationInput is everything a prospective client provides when
// signing up on their own.
type RegistrationInput struct {
	Person   PersonInput
	Client   ClientInput
	Login    string
	Password string
}

func validateCredentials(login, password string) error {
	if !loginPattern.MatchString(login) {
		return invalidInput("login must be 3-32 characters of a-z, 0-9, '.', '_' or '-'")
	}
	if len(password) < minPasswordLength {
		return invalidInput("password must have at least %d characters", minPasswordLength)
	}
	return nil
}

func normalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// Authenticate checks a login and password. Unknown logins and wrong
// passwords both yield ErrInvalidCredentials.
func (s *LogiService) Authenticate(login, password string) (*UserSession, error) {
	login = normalizeLogin(login)
	user, err := s.database.FindUserByLogin(login)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		s.logger.Warn("login failed", "login", login, "reason", "unknown login")
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		s.logger.Warn("login failed", "login", login, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	person, err := s.FindPerson(user.PersonID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("login", "login", login, "role", user.Role)
	return &UserSession{User: user, Person: person, Role: Role(user.Role)}, nil
}

// AddUser creates a login for an existing person. Clients need a client
// record and drivers an employee record with the driver position.
func (s *LogiService) AddUser(in UserInput) (*sqlc.User, error) {
	login := normalizeLogin(in.Login)
	if err := validateCredentials(login, in.Password); err != nil {
		return nil, err
	}
	if _, err := ParseEnum(string(in.Role), Roles); err != nil {
		return nil, err
	}
	if _, err := s.FindPerson(in.PersonID); err != nil {
		return nil, err
	}
	if err := s.checkRoleRecords(in.PersonID, in.Role); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user, err := s.database.CreateUser(sqlc.InsertUserParams{
		Login:        login,
		PasswordHash: hash,
		PersonID:     in.PersonID,
		Role:         string(in.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	s.logger.Info("user added", "login", user.Login, "role", user.Role)
	return user, nil
}

func (s *LogiService) checkRoleRecords(personID int64, role Role) error {
	switch role {
	case RoleClient:
		c, err := s.database.FindClientByPersonID(personID)
		if err != nil {
			return fmt.Errorf("finding client: %w", err)
		}
		if c == nil {
			return invalidInput("person %d is not a client", personID)
		}
	case RoleDriver:
		e, err := s.FindEmployee(personID)
		if err != nil {
			return err
		}
		if e.Position != PositionDriver {
			return invalidInput("employee %d is not a driver", personID)
		}
	case RoleManager, RoleAttendant, RoleLogisticsAssistant:
		if _, err := s.FindEmployee(personID); err != nil {
			return err
		}
	}
	return nil
}

// BootstrapAdmin creates the first administrator. It fails once any admin exists.
func (s *LogiService) BootstrapAdmin(person PersonInput, login, password string) (*sqlc.User, error) {
	admins, err := s.database.CountUsersByRole(string(RoleAdmin))
	if err != nil {
		return nil, fmt.Errorf("counting admins: %w", err)
	}
	if admins > 0 {
		return nil, fmt.Errorf("%w: an administrator is already configured", ErrAlreadyExists)
	}
	if err := validateCredentials(normalizeLogin(login), password); err != nil {
		return nil, err
	}
	p, err := s.AddPerson(person)
	if err != nil {
		return nil, err
	}
	return s.AddUser(UserInput{Login: login, Password: password, PersonID: p.ID, Role: RoleAdmin})
}

// RegisterClient signs up a new client: address, person, client record and
// login are created together or not at all.
func (s *LogiService) RegisterClient(in RegistrationInput) (*sqlc.User, error) {
	login := normalizeLogin(in.Login)
	if err := validateCredentials(login, in.Password); err != nil {
		return nil, err
	}
	if err := in.Person.validate(); err != nil {
		return nil, err
	}
	if err := in.Client.validate(); err != nil {
		return nil, err
	}

	existing, err := s.database.FindUserByLogin(login)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: login %q is taken", ErrAlreadyExists, login)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user, err := s.database.RegisterClient(
		in.Person.Address.params(),
		in.Person.params(),
		in.Client.params(),
		sqlc.InsertUserParams{Login: login, PasswordHash: hash, Role: string(RoleClient)},
	)
	if err != nil {
		return nil, fmt.Errorf("registering client: %w", err)
	}
	s.logger.Info("client registered", "login", user.Login, "person_id", user.PersonID)
	return user, nil
}

func (s *LogiService) ListUsers() ([]*sqlc.ListUsersRow, error) {
	users, err := s.database.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// ChangePassword replaces a user's password after checking the current one.
func (s *LogiService) ChangePassword(login, current, next string) error {
	if _, err := s.Authenticate(login, current); err != nil {
		return err
	}
	return s.ResetPassword(login, next)
}

// ResetPassword sets a new password without checking the old one.
func (s *LogiService) ResetPassword(login, password string) error {
	login = normalizeLogin(login)
	if len(password) < minPasswordLength {
		return invalidInput("password must have at least %d characters", minPasswordLength)
	}
	user, err := s.database.FindUserByLogin(login)
	if err != nil {
		return fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, login)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.database.UpdateUserPassword(login, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	s.logger.Info("password changed", "login", login)
	return nil
}

// RemoveUser deletes a login. The last administrator cannot be removed.
// A nil confirm skips the prompt.
func (s *LogiService) RemoveUser(login string, confirm func(u *sqlc.User) bool) error {
	login = normalizeLogin(login)
	user, err := s.database.FindUserByLogin(login)
	if err != nil {
		return fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, login)
	}
	if Role(user.Role) == RoleAdmin {
		admins, err := s.database.CountUsersByRole(string(RoleAdmin))
		if err != nil {
			return fmt.Errorf("counting admins: %w", err)
		}
		if admins <= 1 {
			return fmt.Errorf("%w: %s is the last administrator", ErrInUse, login)
		}
	}
	if confirm != nil && !confirm(user) {
		return ErrCancelled
	}
	if _, err := s.database.DeleteUser(login); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	s.logger.Info("user removed", "login", login)
	return nil
}

// DriverVehicle returns the plate assigned to a driver.
func (s *LogiService) DriverVehicle(personID int64) (string, error) {
	e, err := s.FindEmployee(personID)
	if err != nil {
		return "", err
	}
	if !e.VehiclePlate.Valid {
		return "", errors.New("no vehicle assigned to this driver")
	}
	return e.VehiclePlate.String, nil
}
