package bank

import (
	"time"

	"caisse-backend/internal/database"
	"caisse-backend/internal/models"
	"caisse-backend/internal/money"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type DepositResponse struct {
	ID     uint               `json:"id"`
	Amount string             `json:"amount"`
	Date   string             `json:"date"`
	Type   models.DepositType `json:"type"`
}

func depositResponse(d *models.BankDeposit) DepositResponse {
	return DepositResponse{
		ID:     d.ID,
		Amount: d.Amount.String(),
		Date:   d.Date.Format(dateLayout),
		Type:   d.Type,
	}
}

type DepositRequest struct {
	Amount string             `json:"amount"`
	Date   string             `json:"date"`
	Type   models.DepositType `json:"type"`
}

// -------------------------------------------------
// POST /api/bank-deposits
// Amounts are signed: negative rows are withdrawals and reduce the bank
// balance.
// -------------------------------------------------
func AddBankDepositHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DepositRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		date, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Champ date invalide, format attendu YYYY-MM-DD")
		}
		if body.Type == "" {
			body.Type = models.DepositTypeDeposit
		}

		deposit := models.BankDeposit{
			Amount: money.Parse(body.Amount),
			Date:   date,
			Type:   body.Type,
		}
		if err := database.DB.Create(&deposit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du mouvement bancaire échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(depositResponse(&deposit))
	}
}

// -------------------------------------------------
// GET /api/bank-deposits?from=&to=&month=2024-03
// -------------------------------------------------
func ListBankDepositsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.BankDeposit{})

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

		var deposits []models.BankDeposit
		if err := dbq.Order("date DESC, id DESC").Find(&deposits).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des mouvements bancaires échouée")
		}

		resp := make([]DepositResponse, 0, len(deposits))
		for i := range deposits {
			resp = append(resp, depositResponse(&deposits[i]))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/bank-deposits/:id
// -------------------------------------------------
func UpdateBankDepositHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		var body DepositRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		date, err := time.Parse(dateLayout, body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Champ date invalide, format attendu YYYY-MM-DD")
		}
		if body.Type == "" {
			body.Type = models.DepositTypeDeposit
		}

		var deposit models.BankDeposit
		if err := database.DB.First(&deposit, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mouvement bancaire introuvable")
		}
		deposit.Amount = money.Parse(body.Amount)
		deposit.Date = date
		deposit.Type = body.Type
		if err := database.DB.Save(&deposit).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du mouvement bancaire échouée")
		}
		return c.JSON(depositResponse(&deposit))
	}
}

// -------------------------------------------------
// DELETE /api/bank-deposits/:id
// -------------------------------------------------
func DeleteBankDepositHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.BankDeposit{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
