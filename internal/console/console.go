// Package console implements the line-oriented prompts used by the
// interactive shell.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// ErrClosed is returned when input ends while a prompt is waiting.
var ErrClosed = errors.New("input closed")

// Console reads answers line by line from in and writes prompts to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal file descriptor for hidden input, -1 if none
}

// New creates a Console over arbitrary streams. Passwords are read as
// plain lines.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, fd: -1}
}

// NewStdio creates a Console over stdin and stdout. Passwords are hidden
// when stdin is a terminal.
func NewStdio() *Console {
	c := New(os.Stdin, os.Stdout)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		c.fd = fd
	}
	return c
}

// Out returns the writer prompts are written to.
func (c *Console) Out() io.Writer { return c.out }

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Prompt prints label and returns the next input line with surrounding
// whitespace removed.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return "", ErrClosed
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Field prompts until check accepts the answer. A nil check accepts
// anything.
func (c *Console) Field(label string, check func(string) error) (string, error) {
	for {
		answer, err := c.Prompt(label)
		if err != nil {
			return "", err
		}
		if check == nil {
			return answer, nil
		}
		if err := check(answer); err != nil {
			c.Printf("  %v\n", err)
			continue
		}
		return answer, nil
	}
}

// Required prompts until a non-blank answer is given.
func (c *Console) Required(label string) (string, error) {
	return c.Field(label, func(s string) error {
		if s == "" {
			return errors.New("a value is required")
		}
		return nil
	})
}

// Int prompts until the answer is a whole number.
func (c *Console) Int(label string) (int64, error) {
	var n int64
	_, err := c.Field(label, func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", s)
		}
		n = v
		return nil
	})
	return n, err
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm.
func (c *Console) Confirm(question string) (bool, error) {
	answer, err := c.Prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Password reads a secret. On a terminal the input is not echoed.
func (c *Console) Password(label string) (string, error) {
	if c.fd < 0 {
		return c.Prompt(label)
	}
	fmt.Fprint(c.out, label)
	b, err := term.ReadPassword(c.fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

// MenuItem is one numbered entry of a menu.
type MenuItem struct {
	Key   string
	Label string
}

// Menu prints a titled list of items and prompts until one of their keys
// is entered.
func (c *Console) Menu(title string, items []MenuItem) (string, error) {
	for {
		c.Printf("\n== %s ==\n", title)
		for _, it := range items {
			c.Printf("  %s - %s\n", it.Key, it.Label)
		}
		answer, err := c.Prompt("Choose an option: ")
		if err != nil {
			return "", err
		}
		for _, it := range items {
			if it.Key == answer {
				return answer, nil
			}
		}
		c.Printf("Invalid option %q.\n", answer)
	}
}

// Table writes rows aligned in columns under headers.
func (c *Console) Table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}
