package journal

import (
	"reflect"
	"testing"
	"time"

	"caisse-backend/internal/models"
)

// A date seen through the range grouping must be indistinguishable from the
// same date built directly, including dates that only exist because an
// invoice was paid or a personnel entry was recorded on them.
func TestBuildRangeViewsMatchesPointViews(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	sheet := models.DaySheet{ID: 1, Date: day1, CashRevenue: dec("4000"), Locked: true}
	lines := []models.SheetLine{
		{Date: day1, Category: models.CategorySupplier, LineNumber: 1, Name: "ACME", Amount: "250"},
		{Date: day1, Category: models.CategoryAdmin, LineNumber: 1, Name: "STEG", Amount: "80"},
	}
	inv1 := paidInvoice(10, "ACME", "300", models.CategorySupplier, 2)
	inv1.PaidDate = &day1
	inv2 := paidInvoice(11, "Gros Sud", "75", models.CategoryMisc, 1)
	inv2.PaidDate = &day2 // no sheet row on this date
	personnel := []models.PersonnelEntry{
		{ID: 5, Date: day3, Kind: models.PersonnelAdvance, EmployeeName: "Sami", Amount: dec("50")},
	}

	views := BuildRangeViews([]models.DaySheet{sheet}, lines, []models.Invoice{inv1, inv2}, personnel)

	if len(views) != 3 {
		t.Fatalf("want 3 active dates, got %d", len(views))
	}
	for i, want := range []string{"2024-03-01", "2024-03-02", "2024-03-05"} {
		if views[i].Date != want {
			t.Fatalf("date order: got %q at %d, want %q", views[i].Date, i, want)
		}
	}

	point := []*DayView{
		BuildDayView(day1, DayData{Sheet: &sheet, Lines: lines, Paid: []models.Invoice{inv1}}),
		BuildDayView(day2, DayData{Paid: []models.Invoice{inv2}}),
		BuildDayView(day3, DayData{Personnel: personnel}),
	}
	for i := range views {
		if !reflect.DeepEqual(views[i], point[i]) {
			t.Errorf("range view %s diverges from the point view", views[i].Date)
		}
	}
}

func TestBuildRangeViewsIdempotent(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sheet := models.DaySheet{ID: 1, Date: day, CashRevenue: dec("100")}
	inv := paidInvoice(1, "X", "20", models.CategorySupplier, 1)
	inv.PaidDate = &day

	a := BuildRangeViews([]models.DaySheet{sheet}, nil, []models.Invoice{inv}, nil)
	b := BuildRangeViews([]models.DaySheet{sheet}, nil, []models.Invoice{inv}, nil)
	if !reflect.DeepEqual(a, b) {
		t.Error("two groupings of the same rows disagree")
	}
}
