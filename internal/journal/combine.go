package journal

import (
	"time"

	"caisse-backend/internal/models"
)

// DayData: everything one date's merged view is built from. Gathering it is
// the service's job; building the view is pure so the read path of MergeDay
// and the Range Aggregator cannot drift apart.
type DayData struct {
	Sheet     *models.DaySheet // nil when the day has no row yet
	Lines     []models.SheetLine
	Paid      []models.Invoice // status=paid, paid_date=date, payer != owner_direct
	Personnel []models.PersonnelEntry
}

// BuildDayView combines one day's sources. Native placeholder lines and paid
// invoices are merged per category and ordered by line number; extra/bonus
// invoices land in the matching personnel lists; totals are recomputed from
// the merged lists.
func BuildDayView(date time.Time, data DayData) *DayView {
	v := &DayView{
		Date:             date.Format(dateLayout),
		SupplierExpenses: []*LineView{},
		MiscExpenses:     []*LineView{},
		AdminExpenses:    []*LineView{},
		Offers:           []*LineView{},
		Advances:         []PersonnelView{},
		Doublings:        []PersonnelView{},
		Extras:           []PersonnelView{},
		Bonuses:          []PersonnelView{},
		SalaryRemainders: []PersonnelView{},
	}

	if data.Sheet != nil {
		v.ID = data.Sheet.ID
		v.Locked = data.Sheet.Locked
		v.CashRevenue = data.Sheet.CashRevenue
		v.CardAmount = data.Sheet.CardAmount
		v.CardAmount2 = data.Sheet.CardAmount2
		v.CheckAmount = data.Sheet.CheckAmount
		v.BankDepositOld = data.Sheet.BankDepositOld
		v.MealTicketAmount = data.Sheet.MealTicketAmount
		v.OffersAmount = data.Sheet.OffersAmount
		v.CashPhoto = data.Sheet.CashPhoto
	}

	native := map[models.ExpenseCategory][]*LineView{}
	for _, sl := range data.Lines {
		native[sl.Category] = append(native[sl.Category], lineFromSheetLine(sl))
	}

	for _, e := range data.Personnel {
		pv := personnelView(e)
		switch e.Kind {
		case models.PersonnelAdvance:
			v.Advances = append(v.Advances, pv)
		case models.PersonnelDoubling:
			v.Doublings = append(v.Doublings, pv)
		case models.PersonnelExtra:
			v.Extras = append(v.Extras, pv)
		case models.PersonnelBonus:
			v.Bonuses = append(v.Bonuses, pv)
		case models.PersonnelSalaryRemainder:
			v.SalaryRemainders = append(v.SalaryRemainders, pv)
		}
	}

	paid := map[models.ExpenseCategory][]*LineView{}
	for _, inv := range data.Paid {
		switch inv.Category {
		case models.CategoryExtra:
			v.Extras = append(v.Extras, personnelFromInvoice(inv, date))
		case models.CategoryBonus:
			v.Bonuses = append(v.Bonuses, personnelFromInvoice(inv, date))
		case models.CategoryMisc, models.CategoryAdmin:
			paid[inv.Category] = append(paid[inv.Category], lineFromInvoice(inv))
		default:
			// unknown categories fall back to the supplier list, like
			// uncategorized invoices always have
			paid[models.CategorySupplier] = append(paid[models.CategorySupplier], lineFromInvoice(inv))
		}
	}

	v.SupplierExpenses = AssignLineNumbers(native[models.CategorySupplier], paid[models.CategorySupplier])
	v.MiscExpenses = AssignLineNumbers(native[models.CategoryMisc], paid[models.CategoryMisc])
	v.AdminExpenses = AssignLineNumbers(native[models.CategoryAdmin], paid[models.CategoryAdmin])
	// offer lines ride along for their photos; they never count as expenses
	v.Offers = AssignLineNumbers(native[models.CategoryOffer], nil)

	v.TotalExpenses = sumLines(v.SupplierExpenses).
		Add(sumLines(v.MiscExpenses)).
		Add(sumLines(v.AdminExpenses)).
		Add(sumPersonnel(v.Advances)).
		Add(sumPersonnel(v.Doublings)).
		Add(sumPersonnel(v.Extras)).
		Add(sumPersonnel(v.Bonuses)).
		Add(sumPersonnel(v.SalaryRemainders))
	v.NetRevenue = v.CashRevenue.Sub(v.TotalExpenses)

	return v
}
