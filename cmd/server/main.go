package main

import (
	"log"
	"strings"

	"caisse-backend/internal/audit"
	"caisse-backend/internal/auth"
	"caisse-backend/internal/balance"
	"caisse-backend/internal/bank"
	"caisse-backend/internal/config"
	"caisse-backend/internal/database"
	"caisse-backend/internal/invoice"
	"caisse-backend/internal/journal"
	"caisse-backend/internal/master"
	"caisse-backend/internal/models"
	"caisse-backend/internal/payroll"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erreur inattendue:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erreur serveur inattendue",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin-only
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/users", auth.CreateUserHandler())
	adminRoutes.Post("/journal/day/unlock", journal.UnlockDayHandler())
	adminRoutes.Delete("/journal/day", journal.DeleteDayHandler())
	adminRoutes.Post("/journal/day/move", journal.MoveDayHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Journalier
	protected.Get("/journal/day", journal.GetDayHandler())
	protected.Get("/journal/range", journal.GetRangeHandler())
	protected.Post("/journal/day", journal.SaveDayHandler())
	protected.Get("/journal/locked-dates", journal.LockedDatesHandler())
	protected.Post("/journal/attachments", journal.UpsertTempAttachmentHandler())
	protected.Get("/journal/attachments", journal.ListTempAttachmentsHandler())
	protected.Delete("/journal/attachments/:id", journal.DeleteTempAttachmentHandler())

	// Facturation
	protected.Post("/invoices", invoice.AddInvoiceHandler())
	protected.Post("/invoices/paid", invoice.AddPaidInvoiceHandler())
	protected.Get("/invoices", invoice.ListInvoicesHandler())
	protected.Put("/invoices/:id", invoice.UpdateInvoiceHandler())
	protected.Delete("/invoices/:id", invoice.DeleteInvoiceHandler())
	protected.Post("/invoices/:id/pay", invoice.PayInvoiceHandler())
	protected.Post("/invoices/:id/unpay", invoice.UnpayInvoiceHandler())

	// Soldes
	protected.Get("/balances", balance.GetBalancesHandler())
	protected.Post("/balances/preview", balance.PreviewBalancesHandler())

	// Personnel
	protected.Post("/personnel", payroll.AddPersonnelEntryHandler())
	protected.Get("/personnel", payroll.ListPersonnelEntriesHandler())
	protected.Delete("/personnel/:id", payroll.DeletePersonnelEntryHandler())
	protected.Put("/salary-remainders", payroll.UpsertSalaryRemainderHandler())
	protected.Get("/salary-remainders", payroll.ListSalaryRemaindersHandler())
	protected.Delete("/salary-remainders/:id", payroll.DeleteSalaryRemainderHandler())

	// Listes de référence
	protected.Post("/suppliers", master.UpsertSupplierHandler())
	protected.Get("/suppliers", master.ListSuppliersHandler())
	protected.Put("/suppliers/:id", master.UpdateSupplierHandler())
	protected.Delete("/suppliers/:id", master.DeleteSupplierHandler())

	protected.Post("/designations", master.UpsertDesignationHandler())
	protected.Get("/designations", master.ListDesignationsHandler())
	protected.Put("/designations/:id", master.UpdateDesignationHandler())
	protected.Delete("/designations/:id", master.DeleteDesignationHandler())

	protected.Post("/employees", master.UpsertEmployeeHandler())
	protected.Get("/employees", master.ListEmployeesHandler())
	protected.Put("/employees/:id", master.UpdateEmployeeHandler())
	protected.Delete("/employees/:id", master.DeleteEmployeeHandler())

	protected.Post("/bank-deposits", bank.AddBankDepositHandler())
	protected.Get("/bank-deposits", bank.ListBankDepositsHandler())
	protected.Put("/bank-deposits/:id", bank.UpdateBankDepositHandler())
	protected.Delete("/bank-deposits/:id", bank.DeleteBankDepositHandler())

	log.Println("Serveur démarré sur le port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
