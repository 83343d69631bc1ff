package balance

import (
	"log"
	"time"

	"caisse-backend/internal/database"
	"caisse-backend/internal/journal"
	"caisse-backend/internal/models"
	"caisse-backend/internal/money"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// AggregateDays folds merged day views into projector input. Bank deposits
// come separately, they live in their own ledger.
func AggregateDays(days []*journal.DayView, bankDeposits decimal.Decimal) Totals {
	t := Totals{BankDeposits: bankDeposits}
	for _, d := range days {
		card := d.CardAmount.Add(d.CardAmount2)
		t.Revenue = t.Revenue.
			Add(d.CashRevenue).
			Add(card).
			Add(d.CheckAmount).
			Add(d.MealTicketAmount).
			Add(d.OffersAmount)
		t.CardAmount = t.CardAmount.Add(card)
		t.CheckAmount = t.CheckAmount.Add(d.CheckAmount)
		t.TicketAmount = t.TicketAmount.Add(d.MealTicketAmount)

		for _, list := range [][]*journal.LineView{d.SupplierExpenses, d.MiscExpenses, d.AdminExpenses} {
			for _, l := range list {
				amount := money.Parse(l.Amount)
				t.CategoryExpenses = t.CategoryExpenses.Add(amount)
				if l.PaymentMethod.IsBankSide() {
					t.BankMethodExpenses = t.BankMethodExpenses.Add(amount)
				}
			}
		}
		for _, list := range [][]journal.PersonnelView{d.Advances, d.Doublings, d.Extras, d.Bonuses, d.SalaryRemainders} {
			for _, p := range list {
				t.PersonnelExpenses = t.PersonnelExpenses.Add(p.Amount)
			}
		}
	}
	return t
}

func rangeBounds(c *fiber.Ctx) (time.Time, time.Time, error) {
	if month := c.Query("month"); month != "" {
		first, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Paramètre month invalide, format attendu YYYY-MM")
		}
		last := first.AddDate(0, 1, -1)
		return first, last, nil
	}

	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Paramètre from invalide, format attendu YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Paramètre to invalide, format attendu YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "La date de fin précède la date de début")
	}
	return from, to, nil
}

// -------------------------------------------------
// GET /api/balances?from=&to=   (or ?month=2024-03)
// -------------------------------------------------
func GetBalancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := rangeBounds(c)
		if err != nil {
			return err
		}

		days, err := journal.NewService(database.DB).RangeView(from, to)
		if err != nil {
			log.Println("Lecture de la période échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Calcul des soldes échoué")
		}

		var deposits decimal.Decimal
		err = database.DB.Model(&models.BankDeposit{}).
			Where("date BETWEEN ? AND ?", from, to).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&deposits).Error
		if err != nil {
			log.Println("Lecture des mouvements bancaires échouée:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Calcul des soldes échoué")
		}

		totals := AggregateDays(days, deposits)
		return c.JSON(fiber.Map{
			"totals":   totals,
			"balances": Project(totals, nil),
		})
	}
}

type PreviewRequest struct {
	Revenue            string `json:"revenue"`
	CardAmount         string `json:"card_amount"`
	CheckAmount        string `json:"check_amount"`
	TicketAmount       string `json:"ticket_amount"`
	BankDeposits       string `json:"bank_deposits"`
	CategoryExpenses   string `json:"category_expenses"`
	PersonnelExpenses  string `json:"personnel_expenses"`
	BankMethodExpenses string `json:"bank_method_expenses"`

	Pending *struct {
		Amount string               `json:"amount"`
		Method models.PaymentMethod `json:"payment_method"`
	} `json:"pending"`
}

// -------------------------------------------------
// POST /api/balances/preview
// Pure projection over client-supplied totals; nothing is read or written.
// Meant to be called on every keystroke of a pending amount.
// -------------------------------------------------
func PreviewBalancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PreviewRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		totals := Totals{
			Revenue:            money.Parse(body.Revenue),
			CardAmount:         money.Parse(body.CardAmount),
			CheckAmount:        money.Parse(body.CheckAmount),
			TicketAmount:       money.Parse(body.TicketAmount),
			BankDeposits:       money.Parse(body.BankDeposits),
			CategoryExpenses:   money.Parse(body.CategoryExpenses),
			PersonnelExpenses:  money.Parse(body.PersonnelExpenses),
			BankMethodExpenses: money.Parse(body.BankMethodExpenses),
		}

		var pending *PendingEdit
		if body.Pending != nil {
			pending = &PendingEdit{
				Amount: money.Parse(body.Pending.Amount),
				Method: body.Pending.Method,
			}
		}

		return c.JSON(Project(totals, pending))
	}
}
