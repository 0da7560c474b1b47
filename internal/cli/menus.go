package cli

import (
	"context"
	"fmt"

	"github.com/abaasith/unibank/pkg/domain/customer"
	"github.com/abaasith/unibank/pkg/domain/user"
	"github.com/abaasith/unibank/pkg/service/auth"
	"github.com/abaasith/unibank/pkg/validation"
)

var adminOptions = []string{
	"1.  Create account",
	"2.  Deposit",
	"3.  Withdraw",
	"4.  Transfer",
	"5.  Balance enquiry",
	"6.  Transaction history",
	"7.  View customer profile",
	"8.  Update customer profile",
	"9.  Deactivate customer",
	"10. Restore customer",
	"11. Search customers",
	"12. Interest history",
	"0.  Logout",
}

var userOptions = []string{
	"1. Deposit",
	"2. Withdraw",
	"3. Transfer",
	"4. Balance enquiry",
	"5. Transaction history",
	"6. My profile",
	"0. Logout",
}

// sessionLoop dispatches menu choices until logout. Service errors are shown
// and the menu repeats; only input exhaustion ends the loop with an error.
func (c *CLI) sessionLoop(ctx context.Context, sess *auth.Session) error {
	admin := sess.Role == user.RoleAdmin
	for {
		if admin {
			renderMenu(c.out, "Admin menu", adminOptions)
		} else {
			renderMenu(c.out, "Account menu", userOptions)
		}
		choice, err := c.prompt.line("Choice")
		if err != nil {
			return err
		}
		if choice == "0" {
			success.Fprintln(c.out, "Logged out.")
			return nil
		}

		var handler func(context.Context, *auth.Session) error
		if admin {
			handler = map[string]func(context.Context, *auth.Session) error{
				"1":  c.createAccount,
				"2":  c.deposit,
				"3":  c.withdraw,
				"4":  c.transfer,
				"5":  c.balance,
				"6":  c.history,
				"7":  c.viewProfile,
				"8":  c.updateProfile,
				"9":  c.deactivate,
				"10": c.restore,
				"11": c.search,
				"12": c.interestHistory,
			}[choice]
		} else {
			handler = map[string]func(context.Context, *auth.Session) error{
				"1": c.deposit,
				"2": c.withdraw,
				"3": c.transfer,
				"4": c.balance,
				"5": c.history,
				"6": c.viewProfile,
			}[choice]
		}
		if handler == nil {
			warn.Fprintln(c.out, "Unknown option.")
			continue
		}
		if err := handler(ctx, sess); err != nil {
			return err
		}
	}
}

// targetAccount resolves which account an operation applies to: customers
// always act on their own account, admins are asked.
func (c *CLI) targetAccount(sess *auth.Session, label string) (string, error) {
	if sess.Role == user.RoleUser {
		return sess.AccountNo, nil
	}
	return c.prompt.line(label)
}

func (c *CLI) deposit(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.targetAccount(sess, "Account number")
	if err != nil {
		return err
	}
	amount, err := c.prompt.amount("Amount to deposit")
	if err != nil {
		return err
	}
	balance, err := c.ledger.Deposit(ctx, sess, accountNo, amount)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Deposited Rs.%s. New balance: Rs.%s\n", amount, balance)
	return nil
}

func (c *CLI) withdraw(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.targetAccount(sess, "Account number")
	if err != nil {
		return err
	}
	amount, err := c.prompt.amount("Amount to withdraw")
	if err != nil {
		return err
	}
	balance, err := c.ledger.Withdraw(ctx, sess, accountNo, amount)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Withdrew Rs.%s. New balance: Rs.%s\n", amount, balance)
	return nil
}

func (c *CLI) transfer(ctx context.Context, sess *auth.Session) error {
	fromNo, err := c.targetAccount(sess, "From account number")
	if err != nil {
		return err
	}
	toNo, err := c.prompt.line("To account number")
	if err != nil {
		return err
	}
	amount, err := c.prompt.amount("Amount to transfer")
	if err != nil {
		return err
	}
	if err := c.ledger.Transfer(ctx, sess, fromNo, toNo, amount); err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Transferred Rs.%s to account %s.\n", amount, toNo)
	return nil
}

func (c *CLI) balance(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.targetAccount(sess, "Account number")
	if err != nil {
		return err
	}
	balance, err := c.ledger.Balance(ctx, sess, accountNo)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Balance of account %s: Rs.%s\n", accountNo, balance)
	return nil
}

func (c *CLI) history(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.targetAccount(sess, "Account number")
	if err != nil {
		return err
	}
	narrations, err := c.ledger.History(ctx, sess, accountNo)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	renderHistory(c.out, accountNo, narrations)
	return nil
}

func (c *CLI) createAccount(ctx context.Context, sess *auth.Session) error {
	var in validation.ProfileInput
	var err error
	if in.Name, err = c.prompt.line("Full name"); err != nil {
		return err
	}
	if in.NIC, err = c.prompt.line("NIC"); err != nil {
		return err
	}
	if in.Phone, err = c.prompt.line("Phone (10 digits)"); err != nil {
		return err
	}
	if in.Email, err = c.prompt.line("Email"); err != nil {
		return err
	}
	if in.Address, err = c.prompt.line("Address"); err != nil {
		return err
	}

	accountType := customer.TypeSavings
	answer, err := c.prompt.line("Account type (1=Savings, 2=Current)")
	if err != nil {
		return err
	}
	if answer == "2" {
		accountType = customer.TypeCurrent
	}
	opening, err := c.prompt.openingAmount("Opening deposit")
	if err != nil {
		return err
	}

	ok, err := c.prompt.confirm(
		fmt.Sprintf("Create %s account for %s with Rs.%s", accountType, in.Name, opening))
	if err != nil {
		return err
	}
	if !ok {
		warn.Fprintln(c.out, "Cancelled.")
		return nil
	}

	created, err := c.customers.Create(ctx, in, accountType, opening)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Account %s created.\n", created.AccountNo)
	fmt.Fprintf(c.out, "  Username:      %s\n", created.Username)
	fmt.Fprintf(c.out, "  Password:      %s\n", created.Password)
	fmt.Fprintf(c.out, "  Date of birth: %s\n", created.DOB)
	fmt.Fprintf(c.out, "  Gender:        %s\n", created.Gender)
	return nil
}

func (c *CLI) viewProfile(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.targetAccount(sess, "Account number")
	if err != nil {
		return err
	}
	profile, err := c.customers.Read(ctx, sess, accountNo)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	renderProfile(c.out, profile)
	return nil
}

var updatableFields = map[string]validation.Field{
	"1": validation.FieldName,
	"2": validation.FieldNIC,
	"3": validation.FieldPhone,
	"4": validation.FieldEmail,
	"5": validation.FieldAddress,
}

func (c *CLI) updateProfile(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.prompt.line("Account number")
	if err != nil {
		return err
	}
	choice, err := c.prompt.line("Field (1=Name, 2=NIC, 3=Phone, 4=Email, 5=Address)")
	if err != nil {
		return err
	}
	field, ok := updatableFields[choice]
	if !ok {
		warn.Fprintln(c.out, "Unknown field.")
		return nil
	}
	value, err := c.prompt.line("New value")
	if err != nil {
		return err
	}
	if err := c.customers.Update(ctx, sess, accountNo, field, value); err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Profile %s updated.\n", field)
	return nil
}

func (c *CLI) deactivate(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.prompt.line("Account number")
	if err != nil {
		return err
	}
	reason, err := c.prompt.line("Reason")
	if err != nil {
		return err
	}
	ok, err := c.prompt.confirm(fmt.Sprintf("Deactivate account %s", accountNo))
	if err != nil {
		return err
	}
	if !ok {
		warn.Fprintln(c.out, "Cancelled.")
		return nil
	}
	if err := c.customers.Deactivate(ctx, sess, accountNo, reason); err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Account %s deactivated.\n", accountNo)
	return nil
}

func (c *CLI) restore(ctx context.Context, sess *auth.Session) error {
	accountNo, err := c.prompt.line("Account number")
	if err != nil {
		return err
	}
	if err := c.customers.Restore(ctx, sess, accountNo); err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	success.Fprintf(c.out, "Account %s restored.\n", accountNo)
	return nil
}

func (c *CLI) search(ctx context.Context, sess *auth.Session) error {
	choice, err := c.prompt.line("Search by (1=NIC, 2=Phone)")
	if err != nil {
		return err
	}
	field := validation.FieldNIC
	if choice == "2" {
		field = validation.FieldPhone
	}
	value, err := c.prompt.line("Value")
	if err != nil {
		return err
	}
	matches, err := c.customers.SearchBy(ctx, sess, field, value)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	if len(matches) == 0 {
		warn.Fprintln(c.out, "No matching customers.")
		return nil
	}
	for _, p := range matches {
		renderProfile(c.out, p)
		fmt.Fprintln(c.out)
	}
	return nil
}

func (c *CLI) interestHistory(ctx context.Context, sess *auth.Session) error {
	entries, err := c.interest.History(ctx)
	if err != nil {
		fail.Fprintf(c.out, "%s\n", friendly(err))
		return nil
	}
	fmt.Fprintln(c.out, "Interest accrual log:")
	renderInterestEntries(c.out, entries)
	return nil
}
