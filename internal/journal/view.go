// Package journal is the reconciliation engine: it merges native sheet lines,
// invoice-backed lines and personnel disbursements into one consistent per-day
// view, keeps attachments bound to stable line numbers across merges, and
// recomputes day totals from the merged lists.
package journal

import (
	"encoding/json"
	"time"

	"caisse-backend/internal/models"
	"caisse-backend/internal/money"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// LineView: one expense line, native to the sheet or mirroring an invoice.
type LineView struct {
	LineNumber    int                  `json:"line_number"`
	Name          string               `json:"name"`
	Amount        string               `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	DocType       string               `json:"doc_type"`
	DocNumber     string               `json:"doc_number"`
	Details       string               `json:"details"`

	// Withholding: Amount is the net paid, OriginalAmount the gross.
	HasWithholding bool   `json:"has_withholding"`
	OriginalAmount string `json:"original_amount,omitempty"`

	Photos          []string `json:"photos"`
	PhotoCheckFront string   `json:"photo_check_front,omitempty"`
	PhotoCheckBack  string   `json:"photo_check_back,omitempty"`

	// Invoice linkage (empty for purely native lines)
	FromInvoice   bool                 `json:"from_invoice"`
	InvoiceID     *uint                `json:"invoice_id,omitempty"`
	InvoiceOrigin models.InvoiceOrigin `json:"invoice_origin,omitempty"`
	InvoiceDate   string               `json:"invoice_date,omitempty"` // received date
	PaidDate      string               `json:"paid_date,omitempty"`
}

// SourceKind tags where a line's truth lives.
type SourceKind int

const (
	// SourceNative: the sheet owns the line. Covers fresh manual entries and
	// lines whose daily_sheet invoice gets deleted and re-promoted on save.
	SourceNative SourceKind = iota
	// SourceMirrored: the line reflects a direct-entry invoice; the invoice
	// row is updated in place, never duplicated.
	SourceMirrored
)

type LineSource struct {
	Kind      SourceKind
	InvoiceID uint // only meaningful for SourceMirrored
}

// Source classifies the line. A line that carries an invoice id but whose
// invoice originated from the daily sheet is still native: its invoice is
// recreated on every save.
func (l *LineView) Source() LineSource {
	if l.FromInvoice && l.InvoiceID != nil && l.InvoiceOrigin != models.OriginDailySheet {
		return LineSource{Kind: SourceMirrored, InvoiceID: *l.InvoiceID}
	}
	return LineSource{Kind: SourceNative}
}

// PersonnelView: a personnel disbursement inside a day view.
type PersonnelView struct {
	ID           uint            `json:"id"`
	EmployeeName string          `json:"employee_name"`
	Amount       decimal.Decimal `json:"amount"`
	DaysCount    decimal.Decimal `json:"days_count,omitempty"`
	Details      string          `json:"details"`
	Date         string          `json:"date"`
	FromInvoice  bool            `json:"from_invoice,omitempty"`
}

// DayView: the merged daily ledger record for one calendar date. Totals are
// derived from the lists below on every build, never read from storage.
type DayView struct {
	ID     uint   `json:"id,omitempty"`
	Date   string `json:"date"`
	Locked bool   `json:"locked"`

	CashRevenue      decimal.Decimal `json:"cash_revenue"`
	CardAmount       decimal.Decimal `json:"card_amount"`
	CardAmount2      decimal.Decimal `json:"card_amount2"`
	CheckAmount      decimal.Decimal `json:"check_amount"`
	BankDepositOld   decimal.Decimal `json:"bank_deposit_amount"`
	MealTicketAmount decimal.Decimal `json:"meal_ticket_amount"`
	OffersAmount     decimal.Decimal `json:"offers_amount"`
	CashPhoto        string          `json:"cash_photo,omitempty"`

	SupplierExpenses []*LineView `json:"supplier_expenses"`
	MiscExpenses     []*LineView `json:"misc_expenses"`
	AdminExpenses    []*LineView `json:"admin_expenses"`
	Offers           []*LineView `json:"offers"` // give-aways; tracked with photos but never an expense

	Advances         []PersonnelView `json:"advances"`
	Doublings        []PersonnelView `json:"doublings"`
	Extras           []PersonnelView `json:"extras"`
	Bonuses          []PersonnelView `json:"bonuses"`
	SalaryRemainders []PersonnelView `json:"salary_remainders"`

	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetRevenue    decimal.Decimal `json:"net_revenue"`
}

// DecodePhotos reads a serialized photo array, treating empty or malformed
// input as an empty list. Partial client state is common.
func DecodePhotos(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// EncodePhotos encodes nil as "[]" so jsonb columns never hold SQL NULLs.
func EncodePhotos(photos []string) string {
	if photos == nil {
		photos = []string{}
	}
	b, err := json.Marshal(photos)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func DecodeLines(raw string) []*LineView {
	if raw == "" {
		return []*LineView{}
	}
	var out []*LineView
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []*LineView{}
	}
	for _, l := range out {
		if l.Photos == nil {
			l.Photos = []string{}
		}
	}
	return out
}

func lineFromSheetLine(sl models.SheetLine) *LineView {
	return &LineView{
		LineNumber:     sl.LineNumber,
		Name:           sl.Name,
		Amount:         sl.Amount,
		HasWithholding: sl.HasWithholding,
		OriginalAmount: sl.OriginalAmount,
		PaymentMethod:  sl.PaymentMethod,
		DocType:        sl.DocType,
		DocNumber:      sl.DocNumber,
		Details:        sl.Details,
		Photos:         DecodePhotos(sl.Photos),
	}
}

func lineFromInvoice(inv models.Invoice) *LineView {
	photos := DecodePhotos(inv.Photos)
	ln := 0
	if inv.LineNumber != nil {
		ln = *inv.LineNumber
	}
	id := inv.ID
	original := inv.OriginalAmount
	if original.IsZero() {
		original = inv.Amount
	}
	l := &LineView{
		LineNumber:      ln,
		Name:            inv.SupplierName,
		Amount:          inv.Amount.String(),
		HasWithholding:  inv.HasWithholding,
		OriginalAmount:  original.String(),
		PaymentMethod:   inv.Method,
		DocType:         inv.DocType,
		DocNumber:       inv.DocNumber,
		Details:         inv.Details,
		Photos:          photos,
		PhotoCheckFront: inv.PhotoCheckFront,
		PhotoCheckBack:  inv.PhotoCheckBack,
		FromInvoice:     true,
		InvoiceID:       &id,
		InvoiceOrigin:   inv.Origin,
		InvoiceDate:     inv.ReceivedDate.Format(dateLayout),
	}
	if inv.PaidDate != nil {
		l.PaidDate = inv.PaidDate.Format(dateLayout)
	}
	return l
}

func personnelView(e models.PersonnelEntry) PersonnelView {
	return PersonnelView{
		ID:           e.ID,
		EmployeeName: e.EmployeeName,
		Amount:       e.Amount,
		DaysCount:    e.DaysCount,
		Details:      e.Details,
		Date:         e.Date.Format(dateLayout),
	}
}

func personnelFromInvoice(inv models.Invoice, date time.Time) PersonnelView {
	return PersonnelView{
		ID:           inv.ID,
		EmployeeName: inv.SupplierName,
		Amount:       inv.Amount,
		Details:      inv.Details,
		Date:         date.Format(dateLayout),
		FromInvoice:  true,
	}
}

func sumLines(lines []*LineView) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(money.Parse(l.Amount))
	}
	return total
}

func sumPersonnel(entries []PersonnelView) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
