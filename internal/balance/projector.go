// Package balance derives the cash / bank / meal-ticket split from aggregated
// day totals. The projection is a pure function so the reporting read path and
// the live form preview can never disagree.
package balance

import (
	"caisse-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Totals: aggregated figures over some date range, as produced by the range
// read path. The projector never reads storage itself.
type Totals struct {
	Revenue            decimal.Decimal `json:"revenue"`              // all channels summed
	CardAmount         decimal.Decimal `json:"card_amount"`          // both terminals
	CheckAmount        decimal.Decimal `json:"check_amount"`
	TicketAmount       decimal.Decimal `json:"ticket_amount"`
	BankDeposits       decimal.Decimal `json:"bank_deposits"`        // signed sum
	CategoryExpenses   decimal.Decimal `json:"category_expenses"`    // supplier + misc + admin lines
	PersonnelExpenses  decimal.Decimal `json:"personnel_expenses"`
	BankMethodExpenses decimal.Decimal `json:"bank_method_expenses"` // expenses settled check/card/transfer
}

// PendingEdit: an expense form or payment action in progress, not yet
// submitted. Injected into the projection for an optimistic preview.
type PendingEdit struct {
	Amount decimal.Decimal      `json:"amount"`
	Method models.PaymentMethod `json:"payment_method"`
}

type Balances struct {
	Expenses  decimal.Decimal `json:"expenses"`
	Remainder decimal.Decimal `json:"remainder"` // reste
	Bank      decimal.Decimal `json:"bank"`      // bancaire
	Cash      decimal.Decimal `json:"cash"`
	Ticket    decimal.Decimal `json:"ticket"`
}

// Project derives the balances. cash + bank + ticket always equals the
// remainder exactly, pending edit included.
func Project(t Totals, pending *PendingEdit) Balances {
	expenses := t.CategoryExpenses.Add(t.PersonnelExpenses)
	bankExpenses := t.BankMethodExpenses

	if pending != nil && pending.Amount.IsPositive() {
		expenses = expenses.Add(pending.Amount)
		if pending.Method.IsBankSide() {
			bankExpenses = bankExpenses.Add(pending.Amount)
		}
	}

	remainder := t.Revenue.Sub(expenses)
	bank := t.CardAmount.Add(t.BankDeposits).Add(t.CheckAmount).Sub(bankExpenses)
	cash := remainder.Sub(bank).Sub(t.TicketAmount)

	return Balances{
		Expenses:  expenses,
		Remainder: remainder,
		Bank:      bank,
		Cash:      cash,
		Ticket:    t.TicketAmount,
	}
}
