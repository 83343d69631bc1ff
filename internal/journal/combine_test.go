package journal

import (
	"testing"
	"time"

	"caisse-backend/internal/models"

	"github.com/shopspring/decimal"
)

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func paidInvoice(id uint, supplier, amount string, category models.ExpenseCategory, lineNumber int) models.Invoice {
	paid := testDate
	inv := models.Invoice{
		ID:           id,
		SupplierName: supplier,
		Amount:       dec(amount),
		ReceivedDate: testDate,
		Category:     category,
		Status:       models.InvoicePaid,
		PaidDate:     &paid,
		Origin:       models.OriginDirect,
	}
	if lineNumber > 0 {
		inv.LineNumber = &lineNumber
	}
	return inv
}

func TestBuildDayViewEmptyDay(t *testing.T) {
	v := BuildDayView(testDate, DayData{})

	if v.Date != "2024-03-01" {
		t.Errorf("date: got %q", v.Date)
	}
	if !v.TotalExpenses.IsZero() || !v.NetRevenue.IsZero() {
		t.Errorf("empty day should be all zero, got expenses=%s net=%s", v.TotalExpenses, v.NetRevenue)
	}
	if v.SupplierExpenses == nil || v.Advances == nil {
		t.Error("lists must be empty slices, not nil")
	}
}

// The reference scenario: one manual supplier line, then a freshly paid
// invoice landing on the same day.
func TestBuildDayViewSupplierLineThenPaidInvoice(t *testing.T) {
	sheet := &models.DaySheet{CashRevenue: dec("5000")}

	// First save: only the manual ACME line exists.
	v := BuildDayView(testDate, DayData{
		Sheet: sheet,
		Lines: []models.SheetLine{
			{Date: testDate, Category: models.CategorySupplier, LineNumber: 1, Name: "ACME", Amount: "1 500,000"},
		},
	})

	if len(v.SupplierExpenses) != 1 || v.SupplierExpenses[0].LineNumber != 1 {
		t.Fatalf("want one supplier line numbered 1, got %+v", v.SupplierExpenses)
	}
	if !v.TotalExpenses.Equal(dec("1500")) {
		t.Errorf("total expenses: got %s, want 1500", v.TotalExpenses)
	}
	if !v.NetRevenue.Equal(dec("3500")) {
		t.Errorf("net revenue: got %s, want 3500", v.NetRevenue)
	}

	// An existing ACME invoice of 300 gets paid against the same day with the
	// next line number.
	v = BuildDayView(testDate, DayData{
		Sheet: sheet,
		Lines: []models.SheetLine{
			{Date: testDate, Category: models.CategorySupplier, LineNumber: 1, Name: "ACME", Amount: "1 500,000"},
		},
		Paid: []models.Invoice{
			paidInvoice(7, "ACME", "300", models.CategorySupplier, 2),
		},
	})

	if len(v.SupplierExpenses) != 2 {
		t.Fatalf("want two supplier lines, got %d", len(v.SupplierExpenses))
	}
	if v.SupplierExpenses[0].LineNumber != 1 || v.SupplierExpenses[1].LineNumber != 2 {
		t.Errorf("line order: got %d then %d", v.SupplierExpenses[0].LineNumber, v.SupplierExpenses[1].LineNumber)
	}
	if !v.SupplierExpenses[1].FromInvoice {
		t.Error("second line should carry its invoice linkage")
	}
	if !v.TotalExpenses.Equal(dec("1800")) {
		t.Errorf("combined total: got %s, want 1800", v.TotalExpenses)
	}
	if !v.NetRevenue.Equal(dec("3200")) {
		t.Errorf("net revenue: got %s, want 3200", v.NetRevenue)
	}
}

func TestBuildDayViewCategoryRouting(t *testing.T) {
	v := BuildDayView(testDate, DayData{
		Paid: []models.Invoice{
			paidInvoice(1, "Fournisseur A", "10", models.CategorySupplier, 1),
			paidInvoice(2, "Divers B", "20", models.CategoryMisc, 1),
			paidInvoice(3, "Admin C", "30", models.CategoryAdmin, 1),
			paidInvoice(4, "Extra D", "40", models.CategoryExtra, 0),
			paidInvoice(5, "Prime E", "50", models.CategoryBonus, 0),
			paidInvoice(6, "Sans catégorie", "60", "", 2),
		},
	})

	if len(v.SupplierExpenses) != 2 {
		t.Errorf("supplier list: got %d lines, want 2 (incl. uncategorized)", len(v.SupplierExpenses))
	}
	if len(v.MiscExpenses) != 1 || len(v.AdminExpenses) != 1 {
		t.Errorf("misc/admin routing wrong: %d / %d", len(v.MiscExpenses), len(v.AdminExpenses))
	}
	if len(v.Extras) != 1 || len(v.Bonuses) != 1 {
		t.Errorf("extra/bonus invoices should land in personnel lists: %d / %d", len(v.Extras), len(v.Bonuses))
	}
	if !v.TotalExpenses.Equal(dec("210")) {
		t.Errorf("total: got %s, want 210", v.TotalExpenses)
	}
}

func TestBuildDayViewPersonnelEntriesPrecedeInvoiceOnes(t *testing.T) {
	v := BuildDayView(testDate, DayData{
		Personnel: []models.PersonnelEntry{
			{ID: 1, Date: testDate, Kind: models.PersonnelExtra, EmployeeName: "Table", Amount: dec("15")},
		},
		Paid: []models.Invoice{
			paidInvoice(9, "Facture", "25", models.CategoryExtra, 0),
		},
	})

	if len(v.Extras) != 2 {
		t.Fatalf("want 2 extras, got %d", len(v.Extras))
	}
	if v.Extras[0].EmployeeName != "Table" || v.Extras[1].EmployeeName != "Facture" {
		t.Errorf("table entries must come first: %q then %q", v.Extras[0].EmployeeName, v.Extras[1].EmployeeName)
	}
	if !v.Extras[1].FromInvoice {
		t.Error("invoice-backed extra should be flagged")
	}
}

func TestBuildDayViewPersonnelCountsInTotals(t *testing.T) {
	v := BuildDayView(testDate, DayData{
		Sheet: &models.DaySheet{CashRevenue: dec("1000")},
		Personnel: []models.PersonnelEntry{
			{Date: testDate, Kind: models.PersonnelAdvance, EmployeeName: "A", Amount: dec("100")},
			{Date: testDate, Kind: models.PersonnelDoubling, EmployeeName: "B", Amount: dec("50")},
			{Date: testDate, Kind: models.PersonnelSalaryRemainder, EmployeeName: "C", Amount: dec("25"), DaysCount: dec("2")},
		},
	})

	if !v.TotalExpenses.Equal(dec("175")) {
		t.Errorf("personnel total: got %s, want 175", v.TotalExpenses)
	}
	if !v.NetRevenue.Equal(dec("825")) {
		t.Errorf("net: got %s, want 825", v.NetRevenue)
	}
}

func TestBuildDayViewOffersNotCountedAsExpenses(t *testing.T) {
	v := BuildDayView(testDate, DayData{
		Sheet: &models.DaySheet{CashRevenue: dec("1000")},
		Lines: []models.SheetLine{
			{Date: testDate, Category: models.CategorySupplier, LineNumber: 1, Name: "A", Amount: "100"},
			{Date: testDate, Category: models.CategoryOffer, LineNumber: 1, Name: "Menu offert", Amount: "35"},
		},
	})

	if len(v.Offers) != 1 {
		t.Fatalf("offer line lost: got %d", len(v.Offers))
	}
	if !v.TotalExpenses.Equal(dec("100")) {
		t.Errorf("offers must not count as expenses: total %s, want 100", v.TotalExpenses)
	}
}

// Both the single-day read and the range read build through the same
// function with the same inputs, so a day seen through either path reports
// identical totals.
func TestBuildDayViewDeterministic(t *testing.T) {
	data := DayData{
		Sheet: &models.DaySheet{CashRevenue: dec("2000"), CardAmount: dec("450.5")},
		Lines: []models.SheetLine{
			{Date: testDate, Category: models.CategorySupplier, LineNumber: 1, Name: "X", Amount: "13.246.500"},
			{Date: testDate, Category: models.CategoryMisc, LineNumber: 1, Name: "Y", Amount: "7,25"},
		},
		Paid: []models.Invoice{
			paidInvoice(3, "Z", "12", models.CategorySupplier, 2),
		},
	}

	a := BuildDayView(testDate, data)
	b := BuildDayView(testDate, data)

	if !a.TotalExpenses.Equal(b.TotalExpenses) || !a.NetRevenue.Equal(b.NetRevenue) {
		t.Errorf("two builds disagree: %s/%s vs %s/%s", a.TotalExpenses, a.NetRevenue, b.TotalExpenses, b.NetRevenue)
	}
	if !a.TotalExpenses.Equal(dec("13265.75")) {
		t.Errorf("parsed totals: got %s, want 13265.75", a.TotalExpenses)
	}
}

// A withheld payment keeps the gross amount alongside the net: the view
// exposes the flag and the original amount, and an invoice that never
// recorded a gross falls back to its own amount.
func TestBuildDayViewWithholdingCarried(t *testing.T) {
	withheld := paidInvoice(4, "SARL Nour", "450", models.CategorySupplier, 1)
	withheld.HasWithholding = true
	withheld.OriginalAmount = dec("500")
	plain := paidInvoice(5, "Gros Sud", "120", models.CategorySupplier, 2)

	v := BuildDayView(testDate, DayData{
		Sheet: &models.DaySheet{CashRevenue: dec("1000")},
		Lines: []models.SheetLine{
			{Date: testDate, Category: models.CategoryMisc, LineNumber: 1, Name: "Brouette",
				Amount: "90", HasWithholding: true, OriginalAmount: "100"},
		},
		Paid: []models.Invoice{withheld, plain},
	})

	got := v.SupplierExpenses[0]
	if !got.HasWithholding || got.OriginalAmount != "500" || got.Amount != "450" {
		t.Errorf("withheld invoice line: got flag=%v original=%q amount=%q", got.HasWithholding, got.OriginalAmount, got.Amount)
	}
	got = v.SupplierExpenses[1]
	if got.HasWithholding || got.OriginalAmount != "120" {
		t.Errorf("plain invoice line: got flag=%v original=%q, want fallback to amount", got.HasWithholding, got.OriginalAmount)
	}
	got = v.MiscExpenses[0]
	if !got.HasWithholding || got.OriginalAmount != "100" {
		t.Errorf("native line: got flag=%v original=%q", got.HasWithholding, got.OriginalAmount)
	}

	// Totals always use the net amount.
	if !v.TotalExpenses.Equal(dec("660")) {
		t.Errorf("total expenses: got %s, want 660", v.TotalExpenses)
	}
}
