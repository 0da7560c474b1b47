package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abaasith/unibank/pkg/domain/money"
	"golang.org/x/term"
)

// errQuit signals that the input stream is closed and the session loop should
// stop.
var errQuit = errors.New("input closed")

type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// password is swappable so tests can feed plain lines.
	password func(label string) (string, error)
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	p.password = p.maskedPassword
	return p
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	text, err := p.in.ReadString('\n')
	if err != nil && text == "" {
		return "", errQuit
	}
	return strings.TrimSpace(text), nil
}

// maskedPassword reads without echo when stdin is a terminal, falling back to
// a plain line read for piped input.
func (p *prompter) maskedPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return p.line(label)
	}
	fmt.Fprintf(p.out, "%s: ", label)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// amount keeps prompting until the input parses as a positive amount with at
// most two decimal places.
func (p *prompter) amount(label string) (money.Money, error) {
	for {
		text, err := p.line(label)
		if err != nil {
			return money.Zero(), err
		}
		amount, err := money.Parse(text)
		if err != nil {
			warn.Fprintf(p.out, "  %s\n", friendly(err))
			continue
		}
		if !amount.IsPositive() {
			warn.Fprintln(p.out, "  Amount must be greater than zero.")
			continue
		}
		return amount, nil
	}
}

// openingAmount is like amount but allows zero, for new accounts.
func (p *prompter) openingAmount(label string) (money.Money, error) {
	for {
		text, err := p.line(label)
		if err != nil {
			return money.Zero(), err
		}
		amount, err := money.Parse(text)
		if err != nil {
			warn.Fprintf(p.out, "  %s\n", friendly(err))
			continue
		}
		if amount.IsNegative() {
			warn.Fprintln(p.out, "  Amount cannot be negative.")
			continue
		}
		return amount, nil
	}
}

func (p *prompter) confirm(label string) (bool, error) {
	for {
		answer, err := p.line(label + " (y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		warn.Fprintln(p.out, "  Please answer y or n.")
	}
}
