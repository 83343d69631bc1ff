package payroll

import (
	"time"

	"caisse-backend/internal/database"
	"caisse-backend/internal/models"
	"caisse-backend/internal/money"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

func validKind(k models.PersonnelKind) bool {
	switch k {
	case models.PersonnelAdvance, models.PersonnelDoubling, models.PersonnelExtra,
		models.PersonnelBonus, models.PersonnelSalaryRemainder:
		return true
	}
	return false
}

type PersonnelEntryResponse struct {
	ID           uint                 `json:"id"`
	Date         string               `json:"date"`
	Kind         models.PersonnelKind `json:"kind"`
	EmployeeName string               `json:"employee_name"`
	Amount       string               `json:"amount"`
	DaysCount    string               `json:"days_count,omitempty"`
	Details      string               `json:"details"`
	CreatedAt    string               `json:"created_at"`
}

func entryResponse(e *models.PersonnelEntry) PersonnelEntryResponse {
	r := PersonnelEntryResponse{
		ID:           e.ID,
		Date:         e.Date.Format(dateLayout),
		Kind:         e.Kind,
		EmployeeName: e.EmployeeName,
		Amount:       e.Amount.String(),
		Details:      e.Details,
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.Kind == models.PersonnelSalaryRemainder {
		r.DaysCount = e.DaysCount.String()
	}
	return r
}

type AddPersonnelRequest struct {
	Date         string               `json:"date"`
	Kind         models.PersonnelKind `json:"kind"`
	EmployeeName string               `json:"employee_name"`
	Amount       string               `json:"amount"`
	DaysCount    string               `json:"days_count"`
	Details      string               `json:"details"`
}

// -------------------------------------------------
// POST /api/personnel
// -------------------------------------------------
func AddPersonnelEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddPersonnelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if !validKind(body.Kind) {
			return fiber.NewError(fiber.StatusBadRequest, "Type d'entrée personnel invalide")
		}
		if body.EmployeeName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom de l'employé obligatoire")
		}
		date, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Champ date invalide, format attendu YYYY-MM-DD")
		}

		entry := models.PersonnelEntry{
			Date:         date,
			Kind:         body.Kind,
			EmployeeName: body.EmployeeName,
			Amount:       money.Parse(body.Amount),
			DaysCount:    money.Parse(body.DaysCount),
			Details:      body.Details,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de l'entrée personnel échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(entryResponse(&entry))
	}
}

// -------------------------------------------------
// GET /api/personnel?kind=advance&from=&to=&month=2024-03
// -------------------------------------------------
func ListPersonnelEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PersonnelEntry{})

		if kind := c.Query("kind"); kind != "" {
			if !validKind(models.PersonnelKind(kind)) {
				return fiber.NewError(fiber.StatusBadRequest, "Type d'entrée personnel invalide")
			}
			dbq = dbq.Where("kind = ?", kind)
		}
		if from := c.Query("from"); from != "" {
			d, err := time.Parse(dateLayout, from)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Paramètre from invalide")
			}
			dbq = dbq.Where("date >= ?", d)
		}
		if to := c.Query("to"); to != "" {
			d, err := time.Parse(dateLayout, to)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Paramètre to invalide")
			}
			dbq = dbq.Where("date <= ?", d)
		}
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("to_char(date, 'YYYY-MM') = ?", month)
		}

		var entries []models.PersonnelEntry
		if err := dbq.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des entrées personnel échouée")
		}

		resp := make([]PersonnelEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, entryResponse(&entries[i]))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/personnel/:id
// -------------------------------------------------
func DeletePersonnelEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.PersonnelEntry{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

type UpsertSalaryRemainderRequest struct {
	EmployeeName string `json:"employee_name"`
	Amount       string `json:"amount"`
	Month        string `json:"month"` // "YYYY-MM"
	Status       string `json:"status"`
}

// -------------------------------------------------
// PUT /api/salary-remainders
// The aggregate sentinel name always inserts a fresh row; named employees
// get one row per (name, month).
// -------------------------------------------------
func UpsertSalaryRemainderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertSalaryRemainderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.EmployeeName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom de l'employé obligatoire")
		}
		if _, err := time.Parse("2006-01", body.Month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Champ month invalide, format attendu YYYY-MM")
		}
		if body.Status == "" {
			body.Status = "confirmed"
		}
		amount := money.Parse(body.Amount)

		var row models.SalaryRemainder
		if body.EmployeeName != models.SalaryRemainderGlobalName {
			err := database.DB.
				Where("employee_name = ? AND month = ?", body.EmployeeName, body.Month).
				First(&row).Error
			if err == nil {
				row.Amount = amount
				row.Status = body.Status
				if err := database.DB.Save(&row).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du reste salaire échouée")
				}
				return c.JSON(row)
			}
		}

		row = models.SalaryRemainder{
			EmployeeName: body.EmployeeName,
			Amount:       amount,
			Month:        body.Month,
			Status:       body.Status,
		}
		if err := database.DB.Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du reste salaire échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// -------------------------------------------------
// GET /api/salary-remainders?month=2024-03
// -------------------------------------------------
func ListSalaryRemaindersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.SalaryRemainder{})
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("month = ?", month)
		}
		var rows []models.SalaryRemainder
		if err := dbq.Order("month DESC, employee_name ASC").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des restes salaires échouée")
		}
		return c.JSON(rows)
	}
}

// -------------------------------------------------
// DELETE /api/salary-remainders/:id
// -------------------------------------------------
func DeleteSalaryRemainderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.SalaryRemainder{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
