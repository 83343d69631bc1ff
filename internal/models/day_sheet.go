package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory: which per-day expense list a line belongs to.
type ExpenseCategory string

const (
	CategorySupplier ExpenseCategory = "supplier" // fournisseurs
	CategoryMisc     ExpenseCategory = "misc"     // divers
	CategoryAdmin    ExpenseCategory = "admin"    // administratif
	CategoryExtra    ExpenseCategory = "extra"
	CategoryBonus    ExpenseCategory = "bonus" // primes
	CategoryOffer    ExpenseCategory = "offer" // offres, given-away items; revenue side, never an expense
)

// DaySheet: one row per calendar date. Revenue channels live here; expense
// lines live in sheet_lines (native placeholders) and invoices (promoted or
// mirrored). Derived totals (total expenses, net revenue) are never stored,
// they are recomputed from the current lists on every read.
type DaySheet struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Date             time.Time       `gorm:"type:date;uniqueIndex;not null" json:"-"`
	CashRevenue      decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"cash_revenue"`
	CardAmount       decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"card_amount"`  // TPE 1
	CardAmount2      decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"card_amount2"` // TPE 2
	CheckAmount      decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"check_amount"`
	BankDepositOld   decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"bank_deposit_amount"` // historical, superseded by the bank_deposits ledger
	MealTicketAmount decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"meal_ticket_amount"`
	OffersAmount     decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"offers_amount"`
	CashPhoto        string          `gorm:"type:text" json:"cash_photo"` // register photo, opaque (base64 or URL)
	Locked           bool            `gorm:"not null;default:false" json:"locked"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SheetLine: a native expense line persisted as a real child row instead of a
// JSON blob. Promoted lines (name + positive amount) are deleted from here and
// live as invoices with origin=daily_sheet; what remains are zero-value
// placeholders the cashier is still filling in.
//
// Amount keeps the raw client string; totals always go through money.Parse so
// the stored value and the displayed value can never disagree.
type SheetLine struct {
	ID             uint            `gorm:"primaryKey" json:"-"`
	Date           time.Time       `gorm:"type:date;index:idx_sheet_lines_key,unique;not null" json:"-"`
	Category       ExpenseCategory `gorm:"size:20;index:idx_sheet_lines_key,unique;not null" json:"-"`
	LineNumber     int             `gorm:"index:idx_sheet_lines_key,unique;not null" json:"line_number"`
	Name           string          `gorm:"size:255" json:"name"`
	Amount         string          `gorm:"size:50" json:"amount"`
	HasWithholding bool            `gorm:"not null;default:false" json:"has_withholding"`
	OriginalAmount string          `gorm:"size:50" json:"original_amount"` // gross before withholding
	PaymentMethod  PaymentMethod   `gorm:"size:20" json:"payment_method"`
	DocType        string          `gorm:"size:50" json:"doc_type"`
	DocNumber      string          `gorm:"size:100" json:"doc_number"`
	Details        string          `gorm:"size:500" json:"details"`
	Photos         string          `gorm:"type:jsonb" json:"photos"` // JSON array of photo refs
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// TempAttachment: freshly uploaded photo set waiting for the next day save,
// keyed by (date, category, line_number). Cleared once the save succeeds.
type TempAttachment struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Date       time.Time       `gorm:"type:date;index:idx_temp_attachments_key,unique;not null" json:"-"`
	Category   ExpenseCategory `gorm:"size:20;index:idx_temp_attachments_key,unique;not null" json:"category"`
	LineNumber int             `gorm:"index:idx_temp_attachments_key,unique;not null" json:"line_number"`
	Photos     string          `gorm:"type:jsonb" json:"photos"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
