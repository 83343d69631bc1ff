package journal

import (
	"fmt"
	"log"
	"time"

	"caisse-backend/internal/audit"
	"caisse-backend/internal/auth"
	"caisse-backend/internal/database"
	"caisse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

func parseDateParam(val, name string) (time.Time, error) {
	if val == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Paramètre %s obligatoire (YYYY-MM-DD)", name))
	}
	// tolerate ISO datetime strings, only the date part counts
	if len(val) > 10 {
		val = val[:10]
	}
	d, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Paramètre %s invalide, format attendu YYYY-MM-DD", name))
	}
	return d, nil
}

// -------------------------------------------------
// GET /api/journal/day?date=2024-03-01
// -------------------------------------------------
func GetDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDateParam(c.Query("date"), "date")
		if err != nil {
			return err
		}

		svc := NewService(database.DB)
		view, err := svc.DayView(date)
		if err != nil {
			log.Println("Lecture du journalier échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture du journalier échouée")
		}
		return c.JSON(view)
	}
}

// -------------------------------------------------
// GET /api/journal/range?from=2024-03-01&to=2024-03-31
// -------------------------------------------------
func GetRangeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := parseDateParam(c.Query("from"), "from")
		if err != nil {
			return err
		}
		to, err := parseDateParam(c.Query("to"), "to")
		if err != nil {
			return err
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "La date de fin précède la date de début")
		}

		svc := NewService(database.DB)
		views, err := svc.RangeView(from, to)
		if err != nil {
			log.Println("Lecture de la période échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture de la période échouée")
		}
		return c.JSON(views)
	}
}

type SaveDayRequest struct {
	Date             string           `json:"date"`
	Payer            models.PayerRole `json:"payer"`
	CashRevenue      string           `json:"cash_revenue"`
	CardAmount       string           `json:"card_amount"`
	CardAmount2      string           `json:"card_amount2"`
	CheckAmount      string           `json:"check_amount"`
	MealTicketAmount string           `json:"meal_ticket_amount"`
	OffersAmount     string           `json:"offers_amount"`
	CashPhoto        string           `json:"cash_photo"`
	// Expense lists travel as serialized JSON arrays of lines; empty strings
	// mean empty lists.
	SupplierExpenses string `json:"supplier_expenses"`
	MiscExpenses     string `json:"misc_expenses"`
	AdminExpenses    string `json:"admin_expenses"`
	Offers           string `json:"offers"`
}

// -------------------------------------------------
// POST /api/journal/day
// -------------------------------------------------
func SaveDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveDayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		date, err := parseDateParam(body.Date, "date")
		if err != nil {
			return err
		}
		if body.Payer != "" && body.Payer != models.PayerHouseCash && body.Payer != models.PayerOwnerDirect {
			return fiber.NewError(fiber.StatusBadRequest, "Payer invalide (house_cash|owner_direct)")
		}

		svc := NewService(database.DB)
		view, err := svc.MergeDay(date, SaveDayInput{
			Payer:            body.Payer,
			CashRevenue:      body.CashRevenue,
			CardAmount:       body.CardAmount,
			CardAmount2:      body.CardAmount2,
			CheckAmount:      body.CheckAmount,
			MealTicketAmount: body.MealTicketAmount,
			OffersAmount:     body.OffersAmount,
			CashPhoto:        body.CashPhoto,
			Supplier:         DecodeLines(body.SupplierExpenses),
			Misc:             DecodeLines(body.MiscExpenses),
			Admin:            DecodeLines(body.AdminExpenses),
			Offers:           DecodeLines(body.Offers),
		})
		if err != nil {
			log.Println("Enregistrement du journalier échoué:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement du journalier échoué")
		}

		userID, userName := auth.UserInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "day_sheet",
			EntityID:    view.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Journalier %s enregistré: dépenses %s, net %s", view.Date, view.TotalExpenses, view.NetRevenue),
			After:       view,
		}); logErr != nil {
			log.Println("Audit log non écrit:", logErr)
		}

		return c.JSON(view)
	}
}

// -------------------------------------------------
// POST /api/journal/day/unlock  {"date": "..."}
// -------------------------------------------------
func UnlockDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Date string `json:"date"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		date, err := parseDateParam(body.Date, "date")
		if err != nil {
			return err
		}
		if err := NewService(database.DB).Unlock(date); err != nil {
			log.Println("Déverrouillage échoué:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Déverrouillage échoué")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// -------------------------------------------------
// GET /api/journal/locked-dates
// -------------------------------------------------
func LockedDatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dates, err := NewService(database.DB).LockedDates()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des dates verrouillées échouée")
		}
		return c.JSON(dates)
	}
}

// -------------------------------------------------
// DELETE /api/journal/day?date=...
// -------------------------------------------------
func DeleteDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDateParam(c.Query("date"), "date")
		if err != nil {
			return err
		}
		if err := NewService(database.DB).DeleteDay(date); err != nil {
			log.Println("Suppression du journalier échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression du journalier échouée")
		}

		userID, userName := auth.UserInfo(c)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "day_sheet",
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Journalier %s supprimé (cascade)", date.Format(dateLayout)),
		}); logErr != nil {
			log.Println("Audit log non écrit:", logErr)
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}

// -------------------------------------------------
// POST /api/journal/day/move  {"old_date": "...", "new_date": "..."}
// -------------------------------------------------
func MoveDayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			OldDate string `json:"old_date"`
			NewDate string `json:"new_date"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		oldDate, err := parseDateParam(body.OldDate, "old_date")
		if err != nil {
			return err
		}
		newDate, err := parseDateParam(body.NewDate, "new_date")
		if err != nil {
			return err
		}
		if err := NewService(database.DB).MoveDay(oldDate, newDate); err != nil {
			log.Println("Déplacement du journalier échoué:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Déplacement du journalier échoué")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

type TempAttachmentRequest struct {
	Date       string                 `json:"date"`
	Category   models.ExpenseCategory `json:"category"`
	LineNumber int                    `json:"line_number"`
	Photos     string                 `json:"photos"` // serialized JSON array
}

// -------------------------------------------------
// POST /api/journal/attachments
// Upsert of the fresh photo set for (date, category, line_number); it stays
// authoritative until the next day save consumes and clears it.
// -------------------------------------------------
func UpsertTempAttachmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TempAttachmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		date, err := parseDateParam(body.Date, "date")
		if err != nil {
			return err
		}
		if body.LineNumber <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "line_number doit être positif")
		}

		row := models.TempAttachment{
			Date:       date,
			Category:   body.Category,
			LineNumber: body.LineNumber,
			Photos:     EncodePhotos(DecodePhotos(body.Photos)),
		}

		var existing models.TempAttachment
		err = database.DB.
			First(&existing, "date = ? AND category = ? AND line_number = ?", date, body.Category, body.LineNumber).Error
		if err == nil {
			existing.Photos = row.Photos
			err = database.DB.Save(&existing).Error
			row = existing
		} else {
			err = database.DB.Create(&row).Error
		}
		if err != nil {
			log.Println("Enregistrement des photos temporaires échoué:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Enregistrement des photos échoué")
		}
		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// -------------------------------------------------
// GET /api/journal/attachments?date=...
// -------------------------------------------------
func ListTempAttachmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := parseDateParam(c.Query("date"), "date")
		if err != nil {
			return err
		}
		var rows []models.TempAttachment
		if err := database.DB.Where("date = ?", date).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des photos temporaires échouée")
		}
		return c.JSON(rows)
	}
}

// -------------------------------------------------
// DELETE /api/journal/attachments/:id
// -------------------------------------------------
func DeleteTempAttachmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.TempAttachment{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
