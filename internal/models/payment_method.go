package models

// PaymentMethod is the single closed taxonomy for expense/revenue channels.
// Balance computations must dispatch on these constants, never on raw strings.
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "cash"        // espèces
	MethodCheck      PaymentMethod = "check"       // chèque
	MethodCard       PaymentMethod = "card"        // carte / TPE
	MethodTransfer   PaymentMethod = "transfer"    // virement
	MethodMealTicket PaymentMethod = "meal_ticket" // ticket restaurant
)

// IsBankSide reports whether the method moves money through the bank
// (check, card, transfer). An owner-direct transfer is still bank-side:
// the payer decides whose ledger the expense lands in, not the channel.
func (m PaymentMethod) IsBankSide() bool {
	switch m {
	case MethodCheck, MethodCard, MethodTransfer:
		return true
	}
	return false
}

// IsValid accepts the empty string too: lines saved without a method default
// to cash at computation time.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case "", MethodCash, MethodCheck, MethodCard, MethodTransfer, MethodMealTicket:
		return true
	}
	return false
}
