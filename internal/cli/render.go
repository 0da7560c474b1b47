package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/abaasith/unibank/pkg/domain/account"
	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/repository"
	"github.com/abaasith/unibank/pkg/validation"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 3)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}).
			PaddingLeft(2)

	fieldLabelStyle = lipgloss.NewStyle().Bold(true).Width(14)

	success = color.New(color.FgGreen, color.Bold)
	fail    = color.New(color.FgRed, color.Bold)
	warn    = color.New(color.FgYellow)
)

func renderBanner(out io.Writer) {
	fmt.Fprintln(out, bannerStyle.Render("UniBank Terminal Banking"))
}

func renderMenu(out io.Writer, title string, options []string) {
	lines := title + "\n"
	for _, opt := range options {
		lines += opt + "\n"
	}
	fmt.Fprintln(out, menuStyle.Render(lines))
}

func renderProfile(out io.Writer, p customer.Profile) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return fieldLabelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Row("Account No", p.AccountNo).
		Row("Name", p.Name).
		Row("NIC", p.NIC).
		Row("Date of Birth", p.DOB).
		Row("Gender", string(p.Gender)).
		Row("Phone", p.Phone).
		Row("Email", p.Email).
		Row("Address", p.Address).
		Row("Account Type", string(p.Type)).
		Row("Status", string(p.Status))
	fmt.Fprintln(out, t.Render())
}

func renderHistory(out io.Writer, accountNo string, narrations []string) {
	fmt.Fprintf(out, "Transaction history for account %s:\n", accountNo)
	if len(narrations) == 0 {
		fmt.Fprintln(out, "  (no transactions)")
		return
	}
	for i, n := range narrations {
		fmt.Fprintf(out, "  %3d. %s\n", i+1, n)
	}
}

func renderInterestEntries(out io.Writer, entries []repository.InterestEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "  (no interest credited yet)")
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Bold(true)
			}
			return s
		}).
		Headers("Date", "Account", "Amount", "Rate")
	for _, e := range entries {
		t.Row(
			e.Date.Format("2006-01-02"),
			e.AccountNo,
			"Rs."+e.Amount.String(),
			fmt.Sprintf("%g%%", e.RatePercent),
		)
	}
	fmt.Fprintln(out, t.Render())
}

// friendly converts service errors into end-user sentences. Unknown errors
// pass through unchanged.
func friendly(err error) string {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, user.ErrNotAuthorized):
		return "You are not allowed to perform that operation."
	case errors.Is(err, account.ErrAccountNotFound):
		return "No account exists with that number."
	case errors.Is(err, account.ErrAccountInactive):
		return "That account is inactive. Contact the bank to restore it."
	case errors.Is(err, account.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, account.ErrAmountMustBePositive):
		return "Amount must be greater than zero."
	case errors.Is(err, account.ErrCannotTransferToSameAccount):
		return "Cannot transfer to the same account."
	case errors.Is(err, customer.ErrProfileNotFound):
		return "No customer profile exists for that account."
	case errors.Is(err, customer.ErrDuplicateNIC):
		return "A customer with that NIC already exists."
	case errors.Is(err, customer.ErrAlreadyInactive):
		return "That customer is already inactive."
	case errors.Is(err, customer.ErrAlreadyActive):
		return "That customer is already active."
	case errors.Is(err, customer.ErrCannotDeriveBirthDetails):
		return "Date of birth cannot be derived from that NIC."
	case errors.Is(err, validation.ErrInvalidField):
		return err.Error()
	default:
		return err.Error()
	}
}
