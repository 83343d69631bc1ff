package invoice

import (
	"fmt"
	"log"
	"time"

	"caisse-backend/internal/audit"
	"caisse-backend/internal/auth"
	"caisse-backend/internal/database"
	"caisse-backend/internal/models"
	"caisse-backend/internal/money"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type InvoiceResponse struct {
	ID           uint                   `json:"id"`
	SupplierName string                 `json:"supplier_name"`
	Amount       string                 `json:"amount"`
	ReceivedDate string                 `json:"received_date"`
	Category     models.ExpenseCategory `json:"category"`
	Status       models.InvoiceStatus   `json:"status"`
	PaidDate     string                 `json:"paid_date,omitempty"`
	Method       models.PaymentMethod   `json:"payment_method,omitempty"`
	Payer        models.PayerRole       `json:"payer,omitempty"`
	Origin       models.InvoiceOrigin   `json:"origin"`
	LineNumber   *int                   `json:"line_number"`
	CostTracked  bool                   `json:"cost_tracked"`

	HasWithholding bool   `json:"has_withholding"`
	OriginalAmount string `json:"original_amount"` // gross before withholding; falls back to amount

	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
	Details   string `json:"details"`

	Photos          string `json:"photos"`
	PhotoCheckFront string `json:"photo_check_front"`
	PhotoCheckBack  string `json:"photo_check_back"`

	UpdatedAt string `json:"updated_at"`
}

func toResponse(inv *models.Invoice) InvoiceResponse {
	r := InvoiceResponse{
		ID:              inv.ID,
		SupplierName:    inv.SupplierName,
		Amount:          inv.Amount.String(),
		ReceivedDate:    inv.ReceivedDate.Format(dateLayout),
		Category:        inv.Category,
		Status:          inv.Status,
		Method:          inv.Method,
		Payer:           inv.Payer,
		Origin:          inv.Origin,
		LineNumber:      inv.LineNumber,
		CostTracked:     inv.CostTracked,
		DocType:         inv.DocType,
		DocNumber:       inv.DocNumber,
		Details:         inv.Details,
		Photos:          inv.Photos,
		PhotoCheckFront: inv.PhotoCheckFront,
		PhotoCheckBack:  inv.PhotoCheckBack,
		UpdatedAt:       inv.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	r.HasWithholding = inv.HasWithholding
	r.OriginalAmount = inv.OriginalAmount.String()
	if inv.OriginalAmount.IsZero() {
		r.OriginalAmount = inv.Amount.String()
	}
	if r.Photos == "" {
		r.Photos = "[]"
	}
	if inv.PaidDate != nil {
		r.PaidDate = inv.PaidDate.Format(dateLayout)
	}
	return r
}

func parseDate(val, name string) (time.Time, error) {
	if len(val) > 10 {
		val = val[:10]
	}
	d, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Champ %s invalide, format attendu YYYY-MM-DD", name))
	}
	return d, nil
}

type AddInvoiceRequest struct {
	SupplierName string                 `json:"supplier_name"`
	Amount       string                 `json:"amount"`
	ReceivedDate string                 `json:"received_date"`
	Category     models.ExpenseCategory `json:"category"`
	DocType      string                 `json:"doc_type"`
	DocNumber    string                 `json:"doc_number"`
	Details      string                 `json:"details"`
	Photos       string                 `json:"photos"`
}

// -------------------------------------------------
// POST /api/invoices: unpaid invoice, direct origin
// -------------------------------------------------
func AddInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.SupplierName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Fournisseur obligatoire")
		}
		received, err := parseDate(body.ReceivedDate, "received_date")
		if err != nil {
			return err
		}
		if body.Category == "" {
			body.Category = models.CategorySupplier
		}
		if body.DocType == "" {
			body.DocType = "Facture"
		}
		photos := body.Photos
		if photos == "" {
			photos = "[]"
		}

		inv := models.Invoice{
			SupplierName: body.SupplierName,
			Amount:       money.Parse(body.Amount),
			ReceivedDate: received,
			Category:     body.Category,
			Status:       models.InvoiceUnpaid,
			Origin:       models.OriginDirect,
			DocType:      body.DocType,
			DocNumber:    body.DocNumber,
			Details:      body.Details,
			Photos:       photos,
		}
		if err := database.DB.Create(&inv).Error; err != nil {
			log.Println("Création de la facture échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la facture échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(&inv))
	}
}

type AddPaidInvoiceRequest struct {
	AddInvoiceRequest
	PaidDate        string               `json:"paid_date"`
	Method          models.PaymentMethod `json:"payment_method"`
	Payer           models.PayerRole     `json:"payer"`
	PhotoCheckFront string               `json:"photo_check_front"`
	PhotoCheckBack  string               `json:"photo_check_back"`
	CostTracked     bool                 `json:"cost_tracked"`
}

// -------------------------------------------------
// POST /api/invoices/paid: already settled, recorded after the fact.
// Stays direct origin so a later day delete only reverts it to unpaid.
// -------------------------------------------------
func AddPaidInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddPaidInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.SupplierName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Fournisseur obligatoire")
		}
		received, err := parseDate(body.ReceivedDate, "received_date")
		if err != nil {
			return err
		}
		paid, err := parseDate(body.PaidDate, "paid_date")
		if err != nil {
			return err
		}
		if body.Method != "" && !body.Method.IsValid() {
			return fiber.NewError(fiber.StatusBadRequest, "Mode de paiement invalide")
		}
		if body.Category == "" {
			body.Category = models.CategorySupplier
		}
		if body.DocType == "" {
			body.DocType = "Facture"
		}
		photos := body.Photos
		if photos == "" {
			photos = "[]"
		}

		inv := models.Invoice{
			SupplierName:    body.SupplierName,
			Amount:          money.Parse(body.Amount),
			ReceivedDate:    received,
			Category:        body.Category,
			Status:          models.InvoicePaid,
			PaidDate:        &paid,
			Method:          body.Method,
			Payer:           body.Payer,
			Origin:          models.OriginDirect,
			DocType:         body.DocType,
			DocNumber:       body.DocNumber,
			Details:         body.Details,
			Photos:          photos,
			PhotoCheckFront: body.PhotoCheckFront,
			PhotoCheckBack:  body.PhotoCheckBack,
			CostTracked:     body.CostTracked,
		}
		if err := database.DB.Create(&inv).Error; err != nil {
			log.Println("Création de la facture payée échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la facture échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(&inv))
	}
}

// -------------------------------------------------
// GET /api/invoices?q=&from=&to=&filter_by=received&month=2024-03&payer=
// Without filter_by=received the date window matches either the received
// date or the paid date.
// -------------------------------------------------
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Invoice{})

		if q := c.Query("q"); q != "" {
			pattern := "%" + q + "%"
			dbq = dbq.Where("supplier_name ILIKE ? OR doc_number ILIKE ? OR amount::text ILIKE ?", pattern, pattern, pattern)
		}

		receivedOnly := c.Query("filter_by") == "received"

		from := c.Query("from")
		to := c.Query("to")
		if from != "" && to != "" {
			fromD, err := parseDate(from, "from")
			if err != nil {
				return err
			}
			toD, err := parseDate(to, "to")
			if err != nil {
				return err
			}
			if receivedOnly {
				dbq = dbq.Where("received_date BETWEEN ? AND ?", fromD, toD)
			} else {
				dbq = dbq.Where("(received_date BETWEEN ? AND ?) OR (paid_date BETWEEN ? AND ?)", fromD, toD, fromD, toD)
			}
		} else if from != "" {
			fromD, err := parseDate(from, "from")
			if err != nil {
				return err
			}
			dbq = dbq.Where("received_date >= ?", fromD)
		} else if to != "" {
			toD, err := parseDate(to, "to")
			if err != nil {
				return err
			}
			dbq = dbq.Where("received_date <= ?", toD)
		}

		if month := c.Query("month"); month != "" {
			if receivedOnly {
				dbq = dbq.Where("to_char(received_date, 'YYYY-MM') = ?", month)
			} else {
				dbq = dbq.Where("to_char(received_date, 'YYYY-MM') = ? OR to_char(paid_date, 'YYYY-MM') = ?", month, month)
			}
		}

		if payer := c.Query("payer"); payer != "" {
			dbq = dbq.Where("payer = ?", payer)
		}

		var invoices []models.Invoice
		if err := dbq.Order("updated_at DESC, id DESC").Find(&invoices).Error; err != nil {
			log.Println("Lecture des factures échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des factures échouée")
		}

		resp := make([]InvoiceResponse, 0, len(invoices))
		for i := range invoices {
			resp = append(resp, toResponse(&invoices[i]))
		}
		return c.JSON(resp)
	}
}

type UpdateInvoiceRequest struct {
	SupplierName *string                 `json:"supplier_name"`
	Amount       *string                 `json:"amount"`
	ReceivedDate *string                 `json:"received_date"`
	Category     *models.ExpenseCategory `json:"category"`
	Method       *models.PaymentMethod   `json:"payment_method"`
	PaidDate     *string                 `json:"paid_date"`
	DocType      *string                 `json:"doc_type"`
	DocNumber    *string                 `json:"doc_number"`
	Details      *string                 `json:"details"`
	Photos       *string                 `json:"photos"`
	CostTracked  *bool                   `json:"cost_tracked"`
}

// -------------------------------------------------
// PUT /api/invoices/:id: partial update, absent fields untouched
// -------------------------------------------------
func UpdateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		var body UpdateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		var inv models.Invoice
		if err := database.DB.First(&inv, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Facture introuvable")
		}

		updates := map[string]any{}
		if body.SupplierName != nil {
			updates["supplier_name"] = *body.SupplierName
		}
		if body.Amount != nil {
			updates["amount"] = money.Parse(*body.Amount)
		}
		if body.ReceivedDate != nil {
			d, err := parseDate(*body.ReceivedDate, "received_date")
			if err != nil {
				return err
			}
			updates["received_date"] = d
		}
		if body.Category != nil {
			updates["category"] = *body.Category
		}
		if body.Method != nil {
			updates["method"] = *body.Method
		}
		if body.PaidDate != nil {
			d, err := parseDate(*body.PaidDate, "paid_date")
			if err != nil {
				return err
			}
			updates["paid_date"] = d
		}
		if body.DocType != nil {
			updates["doc_type"] = *body.DocType
		}
		if body.DocNumber != nil {
			updates["doc_number"] = *body.DocNumber
		}
		if body.Details != nil {
			updates["details"] = *body.Details
		}
		if body.Photos != nil {
			updates["photos"] = *body.Photos
		}
		if body.CostTracked != nil {
			updates["cost_tracked"] = *body.CostTracked
		}

		if len(updates) > 0 {
			if err := database.DB.Model(&inv).Updates(updates).Error; err != nil {
				log.Println("Mise à jour de la facture échouée:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de la facture échouée")
			}
		}
		return c.JSON(toResponse(&inv))
	}
}

// -------------------------------------------------
// DELETE /api/invoices/:id
// -------------------------------------------------
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.Invoice{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression de la facture échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

type PayInvoiceRequest struct {
	Method          models.PaymentMethod `json:"payment_method"`
	PaidDate        string               `json:"paid_date"`
	Payer           models.PayerRole     `json:"payer"`
	PhotoCheckFront string               `json:"photo_check_front"`
	PhotoCheckBack  string               `json:"photo_check_back"`
}

// -------------------------------------------------
// POST /api/invoices/:id/pay
// -------------------------------------------------
func PayInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		var body PayInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		paid, err := parseDate(body.PaidDate, "paid_date")
		if err != nil {
			return err
		}
		if !body.Method.IsValid() {
			return fiber.NewError(fiber.StatusBadRequest, "Mode de paiement invalide")
		}
		if body.Payer == "" {
			body.Payer = models.PayerHouseCash
		}
		if body.Payer != models.PayerHouseCash && body.Payer != models.PayerOwnerDirect {
			return fiber.NewError(fiber.StatusBadRequest, "Payer invalide (house_cash|owner_direct)")
		}

		var inv models.Invoice
		if err := database.DB.First(&inv, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Facture introuvable")
		}

		ln, err := NextLineNumber(database.DB, paid)
		if err != nil {
			log.Println("Attribution du numéro de ligne échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Paiement de la facture échoué")
		}

		updates := map[string]any{
			"status":            models.InvoicePaid,
			"method":            body.Method,
			"paid_date":         paid,
			"payer":             body.Payer,
			"line_number":       ln,
			"cost_tracked":      true,
			"photo_check_front": body.PhotoCheckFront,
			"photo_check_back":  body.PhotoCheckBack,
		}
		if err := database.DB.Model(&inv).Updates(updates).Error; err != nil {
			log.Println("Paiement de la facture échoué:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Paiement de la facture échoué")
		}

		userID, userName := auth.UserInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Facture %s payée le %s (ligne %d)", inv.SupplierName, body.PaidDate, ln),
			After:       toResponse(&inv),
		}); logErr != nil {
			log.Println("Audit log non écrit:", logErr)
		}

		return c.JSON(toResponse(&inv))
	}
}

// -------------------------------------------------
// POST /api/invoices/:id/unpay
// Payment fields are cleared but the line number stays on the row, its slot
// is retired for that day.
// -------------------------------------------------
func UnpayInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}

		var inv models.Invoice
		if err := database.DB.First(&inv, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Facture introuvable")
		}

		updates := map[string]any{
			"status":            models.InvoiceUnpaid,
			"method":            "",
			"paid_date":         nil,
			"payer":             "",
			"photo_check_front": "",
			"photo_check_back":  "",
		}
		if err := database.DB.Model(&inv).Updates(updates).Error; err != nil {
			log.Println("Annulation du paiement échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Annulation du paiement échouée")
		}

		userID, userName := auth.UserInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "invoice",
			EntityID:    inv.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Paiement de la facture %s annulé", inv.SupplierName),
		}); logErr != nil {
			log.Println("Audit log non écrit:", logErr)
		}

		return c.JSON(toResponse(&inv))
	}
}
