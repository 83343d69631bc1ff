package balance

import (
	"testing"

	"caisse-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleTotals() Totals {
	return Totals{
		Revenue:            dec("10000"),
		CardAmount:         dec("3200.500"),
		CheckAmount:        dec("800"),
		TicketAmount:       dec("450"),
		BankDeposits:       dec("1000"),
		CategoryExpenses:   dec("2750.250"),
		PersonnelExpenses:  dec("600"),
		BankMethodExpenses: dec("900"),
	}
}

func TestProject(t *testing.T) {
	b := Project(sampleTotals(), nil)

	if !b.Expenses.Equal(dec("3350.250")) {
		t.Errorf("expenses: got %s, want 3350.250", b.Expenses)
	}
	if !b.Remainder.Equal(dec("6649.750")) {
		t.Errorf("remainder: got %s, want 6649.750", b.Remainder)
	}
	if !b.Bank.Equal(dec("4100.500")) {
		t.Errorf("bank: got %s, want 4100.500", b.Bank)
	}
	if !b.Cash.Equal(dec("2099.250")) {
		t.Errorf("cash: got %s, want 2099.250", b.Cash)
	}
}

// cash + bank + ticket must equal the remainder exactly, for any input and
// any pending edit.
func TestProjectClosure(t *testing.T) {
	pendings := []*PendingEdit{
		nil,
		{Amount: dec("123.456"), Method: models.MethodCash},
		{Amount: dec("99"), Method: models.MethodCheck},
		{Amount: dec("0"), Method: models.MethodCard},
		{Amount: dec("-5"), Method: models.MethodTransfer},
	}

	for i, pending := range pendings {
		b := Project(sampleTotals(), pending)
		sum := b.Cash.Add(b.Bank).Add(b.Ticket)
		if !sum.Equal(b.Remainder) {
			t.Errorf("case %d: cash+bank+ticket = %s, remainder = %s", i, sum, b.Remainder)
		}
	}
}

func TestProjectPendingCashEdit(t *testing.T) {
	base := Project(sampleTotals(), nil)
	b := Project(sampleTotals(), &PendingEdit{Amount: dec("100"), Method: models.MethodCash})

	if !b.Expenses.Sub(base.Expenses).Equal(dec("100")) {
		t.Errorf("pending amount not injected into expenses: %s vs %s", b.Expenses, base.Expenses)
	}
	if !b.Bank.Equal(base.Bank) {
		t.Errorf("cash-method edit must not touch the bank side: %s vs %s", b.Bank, base.Bank)
	}
	if !base.Cash.Sub(b.Cash).Equal(dec("100")) {
		t.Errorf("cash should absorb the pending amount: %s vs %s", b.Cash, base.Cash)
	}
}

func TestProjectPendingBankEdit(t *testing.T) {
	base := Project(sampleTotals(), nil)

	for _, method := range []models.PaymentMethod{models.MethodCheck, models.MethodCard, models.MethodTransfer} {
		b := Project(sampleTotals(), &PendingEdit{Amount: dec("200"), Method: method})
		if !base.Bank.Sub(b.Bank).Equal(dec("200")) {
			t.Errorf("%s: bank should absorb the pending amount: %s vs %s", method, b.Bank, base.Bank)
		}
		if !b.Cash.Equal(base.Cash) {
			t.Errorf("%s: cash must stay untouched: %s vs %s", method, b.Cash, base.Cash)
		}
	}
}

func TestProjectNonPositivePendingIgnored(t *testing.T) {
	base := Project(sampleTotals(), nil)
	for _, amount := range []string{"0", "-10"} {
		b := Project(sampleTotals(), &PendingEdit{Amount: dec(amount), Method: models.MethodCash})
		if !b.Expenses.Equal(base.Expenses) {
			t.Errorf("pending %s should be ignored: %s vs %s", amount, b.Expenses, base.Expenses)
		}
	}
}
