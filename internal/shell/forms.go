package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sislog/internal/console"
	"sislog/internal/logi"
)

// choose prompts for one of allowed, by number or by name. When current is
// set a blank answer keeps it.
func choose[T ~string](c *console.Console, label string, allowed []T, current T) (T, error) {
	options := make([]string, len(allowed))
	for i, v := range allowed {
		options[i] = fmt.Sprintf("%d=%s", i+1, logi.Label(v))
	}
	prompt := fmt.Sprintf("%s (%s): ", label, strings.Join(options, ", "))
	if current != "" {
		prompt = fmt.Sprintf("%s (%s) [%s]: ", label, strings.Join(options, ", "), logi.Label(current))
	}

	var picked T
	_, err := c.Field(prompt, func(answer string) error {
		if answer == "" && current != "" {
			picked = current
			return nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(allowed) {
			picked = allowed[n-1]
			return nil
		}
		v, err := logi.ParseEnum(answer, allowed)
		if err != nil {
			return errors.New("pick one of the listed options")
		}
		picked = v
		return nil
	})
	return picked, err
}

// readKg prompts for a positive weight. When current is non-zero a blank
// answer keeps it.
func readKg(c *console.Console, label string, current decimal.Decimal) (decimal.Decimal, error) {
	prompt := label + ": "
	if !current.IsZero() {
		prompt = fmt.Sprintf("%s [%s]: ", label, logi.FormatKg(current))
	}
	var kg decimal.Decimal
	_, err := c.Field(prompt, func(answer string) error {
		if answer == "" && !current.IsZero() {
			kg = current
			return nil
		}
		d, err := logi.ParseKg(answer)
		if err != nil {
			return err
		}
		kg = d
		return nil
	})
	return kg, err
}

// readDate prompts for a YYYY-MM-DD date. With optional set a blank answer
// yields the zero time.
func readDate(c *console.Console, label string, optional bool) (time.Time, error) {
	var t time.Time
	_, err := c.Field(label+" (YYYY-MM-DD): ", func(answer string) error {
		if answer == "" && optional {
			return nil
		}
		d, err := logi.ParseDate(answer)
		if err != nil {
			return err
		}
		t = d
		return nil
	})
	return t, err
}

// readID prompts for a record id. With optional set, 0 or a blank answer
// yields 0.
func readID(c *console.Console, label string, optional bool) (int64, error) {
	var id int64
	_, err := c.Field(label+": ", func(answer string) error {
		if answer == "" && optional {
			id = 0
			return nil
		}
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil || n < 0 || (n == 0 && !optional) {
			return fmt.Errorf("%q is not a valid id", answer)
		}
		id = n
		return nil
	})
	return id, err
}

// readLoadTime reads a "YYYY-MM-DD HH:MM" timestamp. A malformed answer is
// returned as an error instead of re-prompting.
func readLoadTime(c *console.Console, label string) (time.Time, error) {
	raw, err := c.Prompt(label + " (YYYY-MM-DD HH:MM): ")
	if err != nil {
		return time.Time{}, err
	}
	return logi.ParseLoadTime(raw)
}

func (s *Shell) readAddress() (logi.AddressInput, error) {
	var (
		a   logi.AddressInput
		err error
	)
	fields := []struct {
		label    string
		dst      *string
		optional bool
	}{
		{"Postal code", &a.PostalCode, false},
		{"State (UF)", &a.State, false},
		{"City", &a.City, false},
		{"District", &a.District, false},
		{"Street", &a.Street, false},
		{"Number", &a.Number, false},
		{"Complement", &a.Complement, true},
	}
	for _, f := range fields {
		if f.optional {
			*f.dst, err = s.con.Prompt(f.label + " (optional): ")
		} else {
			*f.dst, err = s.con.Required(f.label + ": ")
		}
		if err != nil {
			return a, err
		}
	}
	return a, nil
}

func (s *Shell) readPerson() (logi.PersonInput, error) {
	var (
		p   logi.PersonInput
		err error
	)
	if p.Name, err = s.con.Required("Name: "); err != nil {
		return p, err
	}
	if p.Document, err = s.con.Prompt("Document (optional): "); err != nil {
		return p, err
	}
	if p.Phone, err = s.con.Prompt("Phone (optional): "); err != nil {
		return p, err
	}
	if p.Email, err = s.con.Prompt("Email (optional): "); err != nil {
		return p, err
	}
	s.con.Println("-- Address --")
	p.Address, err = s.readAddress()
	return p, err
}

// readClient reads the client-specific fields for personID.
func (s *Shell) readClient(personID int64) (logi.ClientInput, error) {
	in := logi.ClientInput{PersonID: personID}
	kind, err := choose(s.con, "Client type", []logi.ClientKind{logi.ClientIndividual, logi.ClientCompany}, "")
	if err != nil {
		return in, err
	}
	in.Kind = kind

	if kind == logi.ClientIndividual {
		if in.CPF, err = s.con.Required("CPF: "); err != nil {
			return in, err
		}
		in.BirthDate, err = readDate(s.con, "Birth date", false)
		return in, err
	}
	if in.CNPJ, err = s.con.Required("CNPJ: "); err != nil {
		return in, err
	}
	in.CompanyName, err = s.con.Required("Company name: ")
	return in, err
}
