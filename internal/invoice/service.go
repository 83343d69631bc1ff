package invoice

import (
	"fmt"
	"time"

	"caisse-backend/internal/models"

	"gorm.io/gorm"
)

// NextLineNumber computes the line number a newly paid invoice gets for a
// given day: one past the maximum already used by that day's paid invoices
// and its supplier/misc sheet lines. Admin lines live in their own numbering
// space and are ignored. Retired numbers are never reused.
func NextLineNumber(db *gorm.DB, date time.Time) (int, error) {
	var maxInvoice int
	err := db.Model(&models.Invoice{}).
		Where("paid_date = ? AND line_number IS NOT NULL", date).
		Select("COALESCE(MAX(line_number), 0)").
		Scan(&maxInvoice).Error
	if err != nil {
		return 0, fmt.Errorf("lecture des numéros de ligne (factures): %w", err)
	}

	var maxLine int
	err = db.Model(&models.SheetLine{}).
		Where("date = ? AND category IN ?", date, []models.ExpenseCategory{models.CategorySupplier, models.CategoryMisc}).
		Select("COALESCE(MAX(line_number), 0)").
		Scan(&maxLine).Error
	if err != nil {
		return 0, fmt.Errorf("lecture des numéros de ligne (journalier): %w", err)
	}

	maxLn := maxInvoice
	if maxLine > maxLn {
		maxLn = maxLine
	}
	return maxLn + 1, nil
}
