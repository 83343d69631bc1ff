package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

// InvoiceOrigin distinguishes lines promoted from a day sheet from invoices
// entered directly on the invoicing page. A daily_sheet invoice belongs to
// exactly one day's merged view (keyed by paid_date) and is deleted with it;
// a direct invoice survives the day and reverts to unpaid instead.
type InvoiceOrigin string

const (
	OriginDailySheet InvoiceOrigin = "daily_sheet"
	OriginDirect     InvoiceOrigin = "direct"
)

// PayerRole: whose money settled the invoice.
type PayerRole string

const (
	PayerHouseCash   PayerRole = "house_cash"   // paid from the register
	PayerOwnerDirect PayerRole = "owner_direct" // paid by the owner, outside the day sheet
)

// Invoice: persisted expense record with its own paid/unpaid lifecycle,
// independent of any DaySheet.
type Invoice struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SupplierName string          `gorm:"size:255;not null" json:"supplier_name"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"amount"`
	ReceivedDate time.Time       `gorm:"type:date;index;not null" json:"-"`
	Category     ExpenseCategory `gorm:"size:20;not null;default:supplier" json:"category"`
	Status       InvoiceStatus   `gorm:"size:10;index;not null;default:unpaid" json:"status"`
	PaidDate     *time.Time      `gorm:"type:date;index" json:"-"`
	Method       PaymentMethod   `gorm:"size:20" json:"payment_method"`
	Payer        PayerRole       `gorm:"size:20" json:"payer"`
	Origin       InvoiceOrigin   `gorm:"size:20;not null;default:direct" json:"origin"`
	LineNumber   *int            `gorm:"index" json:"line_number"` // assigned at payment time, stable afterwards
	CostTracked  bool            `gorm:"not null;default:false" json:"cost_tracked"`

	// Withholding (retenue à la source): Amount is the net actually paid,
	// OriginalAmount keeps the gross. Zero means no gross was recorded.
	HasWithholding bool            `gorm:"not null;default:false" json:"has_withholding"`
	OriginalAmount decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"original_amount"`

	DocType   string `gorm:"size:50" json:"doc_type"`
	DocNumber string `gorm:"size:100" json:"doc_number"`
	Details   string `gorm:"size:500" json:"details"`

	Photos          string `gorm:"type:jsonb" json:"photos"` // JSON array of photo refs
	PhotoCheckFront string `gorm:"type:text" json:"photo_check_front"`
	PhotoCheckBack  string `gorm:"type:text" json:"photo_check_back"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
