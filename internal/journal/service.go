package journal

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"caisse-backend/internal/models"
	"caisse-backend/internal/money"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type lineKey struct {
	Category models.ExpenseCategory
	Line     int
}

// fetchDayData gathers one date's sources. The queries are independent and
// read-only, so they run concurrently.
func (s *Service) fetchDayData(date time.Time) (DayData, error) {
	var data DayData

	g := new(errgroup.Group)
	g.Go(func() error {
		var sheet models.DaySheet
		err := s.db.First(&sheet, "date = ?", date).Error
		if err == nil {
			data.Sheet = &sheet
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return s.db.Where("date = ?", date).Order("line_number ASC").Find(&data.Lines).Error
	})
	g.Go(func() error {
		return s.db.
			Where("status = ? AND paid_date = ? AND payer <> ?", models.InvoicePaid, date, models.PayerOwnerDirect).
			Order("line_number ASC NULLS LAST, id ASC").
			Find(&data.Paid).Error
	})
	g.Go(func() error {
		return s.db.Where("date = ?", date).Order("id ASC").Find(&data.Personnel).Error
	})

	return data, g.Wait()
}

// DayView builds the merged view of one date. Read path of the daily merge,
// no side effects.
func (s *Service) DayView(date time.Time) (*DayView, error) {
	data, err := s.fetchDayData(date)
	if err != nil {
		return nil, err
	}
	return BuildDayView(date, data), nil
}

// RangeView returns merged views, chronologically ordered, for every date
// with any activity in [from, to]: a day row, a personnel line or an invoice
// paid in range. Read-only variant of the daily merge, no promotion, no
// writes. For a given date it must match DayView exactly.
func (s *Service) RangeView(from, to time.Time) ([]*DayView, error) {
	var (
		sheets    []models.DaySheet
		lines     []models.SheetLine
		paid      []models.Invoice
		personnel []models.PersonnelEntry
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Where("date >= ? AND date <= ?", from, to).Order("date ASC").Find(&sheets).Error
	})
	g.Go(func() error {
		return s.db.Where("date >= ? AND date <= ?", from, to).Order("line_number ASC").Find(&lines).Error
	})
	g.Go(func() error {
		return s.db.
			Where("status = ? AND paid_date >= ? AND paid_date <= ? AND payer <> ?",
				models.InvoicePaid, from, to, models.PayerOwnerDirect).
			Order("line_number ASC NULLS LAST, id ASC").
			Find(&paid).Error
	})
	g.Go(func() error {
		return s.db.Where("date >= ? AND date <= ?", from, to).Order("id ASC").Find(&personnel).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildRangeViews(sheets, lines, paid, personnel), nil
}

// BuildRangeViews groups the fetched rows by date and builds one view per
// date, chronologically. Grouping by the same keys the single-day fetch
// filters on keeps a range view and a point view of the same date identical.
func BuildRangeViews(sheets []models.DaySheet, lines []models.SheetLine, paid []models.Invoice, personnel []models.PersonnelEntry) []*DayView {
	byDate := map[string]*DayData{}
	day := func(t time.Time) *DayData {
		key := t.Format(dateLayout)
		d, ok := byDate[key]
		if !ok {
			d = &DayData{}
			byDate[key] = d
		}
		return d
	}

	for i := range sheets {
		day(sheets[i].Date).Sheet = &sheets[i]
	}
	for _, sl := range lines {
		d := day(sl.Date)
		d.Lines = append(d.Lines, sl)
	}
	for _, inv := range paid {
		d := day(*inv.PaidDate)
		d.Paid = append(d.Paid, inv)
	}
	for _, pe := range personnel {
		d := day(pe.Date)
		d.Personnel = append(d.Personnel, pe)
	}

	dates := make([]string, 0, len(byDate))
	for k := range byDate {
		dates = append(dates, k)
	}
	sort.Strings(dates)

	views := make([]*DayView, 0, len(dates))
	for _, key := range dates {
		date, err := time.Parse(dateLayout, key)
		if err != nil {
			continue
		}
		views = append(views, BuildDayView(date, *byDate[key]))
	}
	return views
}

// SaveDayInput carries one day's full save payload. Amount fields keep the
// raw client strings; expense lists arrive already decoded from their JSON
// arrays.
type SaveDayInput struct {
	Payer            models.PayerRole
	CashRevenue      string
	CardAmount       string
	CardAmount2      string
	CheckAmount      string
	MealTicketAmount string
	OffersAmount     string
	CashPhoto        string
	Supplier         []*LineView
	Misc             []*LineView
	Admin            []*LineView
	Offers           []*LineView
}

// MergeDay is the full merge-and-replace of one day's derived state:
// line numbering, attachment reconciliation, promotion of named lines to
// daily_sheet invoices, in-place update of mirrored invoices, then the day
// row rewrite. All writes commit or roll back as one transaction.
func (s *Service) MergeDay(date time.Time, in SaveDayInput) (*DayView, error) {
	if in.Payer == "" {
		in.Payer = models.PayerHouseCash
	}

	// Pre-reads: fresh uploads and the attachment state about to be deleted.
	var (
		temps        []models.TempAttachment
		prevInvoices []models.Invoice
		prevLines    []models.SheetLine
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Where("date = ?", date).Find(&temps).Error
	})
	g.Go(func() error {
		return s.db.Where("paid_date = ?", date).Find(&prevInvoices).Error
	})
	g.Go(func() error {
		return s.db.Where("date = ?", date).Find(&prevLines).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tempByKey := map[lineKey][]string{}
	for _, t := range temps {
		tempByKey[lineKey{t.Category, t.LineNumber}] = DecodePhotos(t.Photos)
	}
	persistedByInvoice := map[uint]*PersistedPhotos{}
	for i := range prevInvoices {
		inv := prevInvoices[i]
		persistedByInvoice[inv.ID] = &PersistedPhotos{
			Photos:     DecodePhotos(inv.Photos),
			CheckFront: inv.PhotoCheckFront,
			CheckBack:  inv.PhotoCheckBack,
		}
	}
	persistedByLine := map[lineKey]*PersistedPhotos{}
	for _, sl := range prevLines {
		persistedByLine[lineKey{sl.Category, sl.LineNumber}] = &PersistedPhotos{
			Photos: DecodePhotos(sl.Photos),
		}
	}

	var (
		placeholders []models.SheetLine
		promoted     []models.Invoice
		mirrored     []mirrorUpdate
	)

	// processList walks one category's submitted lines: resolve attachments,
	// then dispatch on the line source. Admin lines are never promoted.
	processList := func(cat models.ExpenseCategory, list []*LineView, promote bool) {
		FillLineNumbers(list)
		for _, l := range list {
			key := lineKey{cat, l.LineNumber}
			temp, hasTemp := tempByKey[key]
			var persisted *PersistedPhotos
			if l.InvoiceID != nil {
				persisted = persistedByInvoice[*l.InvoiceID]
			}
			if persisted == nil {
				persisted = persistedByLine[key]
			}
			ResolveAttachments(l, temp, hasTemp, persisted)

			src := l.Source()
			amount := money.Parse(l.Amount)
			original := money.Parse(l.OriginalAmount)
			if original.IsZero() {
				original = amount
			}

			switch {
			case src.Kind == SourceMirrored:
				mirrored = append(mirrored, mirrorUpdate{ID: src.InvoiceID, Line: l, Amount: amount, Original: original})
			case promote && l.Name != "" && amount.IsPositive():
				ln := l.LineNumber
				method := l.PaymentMethod
				if method == "" {
					method = models.MethodCash
				}
				docType := l.DocType
				if docType == "" {
					docType = "BL"
				}
				paidDate := date
				promoted = append(promoted, models.Invoice{
					SupplierName:    l.Name,
					Amount:          amount,
					HasWithholding:  l.HasWithholding,
					OriginalAmount:  original,
					ReceivedDate:    date,
					Category:        cat,
					Status:          models.InvoicePaid,
					PaidDate:        &paidDate,
					Method:          method,
					Payer:           in.Payer,
					Origin:          models.OriginDailySheet,
					LineNumber:      &ln,
					DocType:         docType,
					DocNumber:       l.DocNumber,
					Details:         l.Details,
					Photos:          EncodePhotos(l.Photos),
					PhotoCheckFront: l.PhotoCheckFront,
					PhotoCheckBack:  l.PhotoCheckBack,
				})
			default:
				placeholders = append(placeholders, models.SheetLine{
					Date:           date,
					Category:       cat,
					LineNumber:     l.LineNumber,
					Name:           l.Name,
					Amount:         l.Amount,
					HasWithholding: l.HasWithholding,
					OriginalAmount: l.OriginalAmount,
					PaymentMethod:  l.PaymentMethod,
					DocType:        l.DocType,
					DocNumber:      l.DocNumber,
					Details:        l.Details,
					Photos:         EncodePhotos(l.Photos),
				})
			}
		}
	}

	processList(models.CategorySupplier, in.Supplier, true)
	processList(models.CategoryMisc, in.Misc, true)
	processList(models.CategoryAdmin, in.Admin, false)
	processList(models.CategoryOffer, in.Offers, false)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Re-promotion: drop this date's previously promoted invoices, the
		// loop above re-creates them. Mirrored (direct-entry) invoices are
		// untouched by this delete.
		if err := tx.
			Where("origin = ? AND (paid_date = ? OR received_date = ?)", models.OriginDailySheet, date, date).
			Delete(&models.Invoice{}).Error; err != nil {
			return fmt.Errorf("purge des factures promues: %w", err)
		}

		for _, m := range mirrored {
			updates := map[string]any{
				"supplier_name":     m.Line.Name,
				"amount":            m.Amount,
				"has_withholding":   m.Line.HasWithholding,
				"original_amount":   m.Original,
				"doc_type":          m.Line.DocType,
				"doc_number":        m.Line.DocNumber,
				"details":           m.Line.Details,
				"photos":            EncodePhotos(m.Line.Photos),
				"photo_check_front": m.Line.PhotoCheckFront,
				"photo_check_back":  m.Line.PhotoCheckBack,
				"line_number":       m.Line.LineNumber,
			}
			if err := tx.Model(&models.Invoice{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("mise à jour de la facture %d: %w", m.ID, err)
			}
		}

		if len(promoted) > 0 {
			if err := tx.Create(&promoted).Error; err != nil {
				return fmt.Errorf("promotion des lignes en factures: %w", err)
			}
		}

		if err := tx.Where("date = ?", date).Delete(&models.SheetLine{}).Error; err != nil {
			return err
		}
		if len(placeholders) > 0 {
			if err := tx.Create(&placeholders).Error; err != nil {
				return err
			}
		}

		var sheet models.DaySheet
		err := tx.First(&sheet, "date = ?", date).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		sheet.Date = date
		sheet.CashRevenue = money.Parse(in.CashRevenue)
		sheet.CardAmount = money.Parse(in.CardAmount)
		sheet.CardAmount2 = money.Parse(in.CardAmount2)
		sheet.CheckAmount = money.Parse(in.CheckAmount)
		sheet.MealTicketAmount = money.Parse(in.MealTicketAmount)
		sheet.OffersAmount = money.Parse(in.OffersAmount)
		if in.CashPhoto != "" {
			sheet.CashPhoto = in.CashPhoto
		}
		sheet.Locked = true
		if err := tx.Save(&sheet).Error; err != nil {
			return err
		}

		return tx.Where("date = ?", date).Delete(&models.TempAttachment{}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.DayView(date)
}

type mirrorUpdate struct {
	ID       uint
	Line     *LineView
	Amount   decimal.Decimal
	Original decimal.Decimal
}

// Unlock clears the locked flag set by the save path.
func (s *Service) Unlock(date time.Time) error {
	return s.db.Model(&models.DaySheet{}).Where("date = ?", date).Update("locked", false).Error
}

// LockedDates lists every date whose sheet is locked.
func (s *Service) LockedDates() ([]string, error) {
	var sheets []models.DaySheet
	if err := s.db.Where("locked = ?", true).Order("date ASC").Find(&sheets).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		out = append(out, sh.Date.Format(dateLayout))
	}
	return out, nil
}

// DeleteDay cascades: day row, native lines, personnel entries and temp
// attachments go; invoices promoted from the sheet are deleted with it;
// every other invoice paid on that date reverts to unpaid and keeps its
// line number (the slot is retired, never reused).
func (s *Service) DeleteDay(date time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&models.DaySheet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("date = ?", date).Delete(&models.SheetLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("date = ?", date).Delete(&models.PersonnelEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("date = ?", date).Delete(&models.TempAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("origin = ? AND (paid_date = ? OR received_date = ?)", models.OriginDailySheet, date, date).
			Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).
			Where("status = ? AND paid_date = ?", models.InvoicePaid, date).
			Updates(map[string]any{
				"status":       models.InvoiceUnpaid,
				"paid_date":    nil,
				"method":       "",
				"payer":        "",
				"cost_tracked": false,
			}).Error
	})
}

// MoveDay re-dates a whole day: sheet, native lines, personnel entries,
// temp attachments, the paid date of house-paid invoices, and the received
// date of invoices the sheet itself promoted.
func (s *Service) MoveDay(oldDate, newDate time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		tables := []any{
			&models.DaySheet{},
			&models.SheetLine{},
			&models.PersonnelEntry{},
			&models.TempAttachment{},
		}
		for _, model := range tables {
			if err := tx.Model(model).Where("date = ?", oldDate).Update("date", newDate).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Invoice{}).
			Where("paid_date = ? AND payer <> ?", oldDate, models.PayerOwnerDirect).
			Update("paid_date", newDate).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invoice{}).
			Where("received_date = ? AND origin = ?", oldDate, models.OriginDailySheet).
			Update("received_date", newDate).Error
	})
}
