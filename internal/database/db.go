package database

import (
	"log"

	"caisse-backend/internal/config"
	"caisse-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Connexion à la base impossible: %v", err)
	}

	// Legacy migration: the first deployments stored expense lists as JSON
	// arrays on the day row (columns supplier_expenses / misc_expenses /
	// admin_expenses). Those columns are dropped once sheet_lines exists;
	// re-import happens through the regular save path.
	if DB.Migrator().HasTable(&models.DaySheet{}) {
		for _, col := range []string{"supplier_expenses", "misc_expenses", "admin_expenses"} {
			if DB.Migrator().HasColumn(&models.DaySheet{}, col) {
				log.Printf("Migration: suppression de la colonne JSON héritée day_sheets.%s", col)
				if err := DB.Exec("ALTER TABLE day_sheets DROP COLUMN IF EXISTS " + col).Error; err != nil {
					log.Printf("Suppression de %s échouée (on continue): %v", col, err)
				}
			}
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.DaySheet{},
		&models.SheetLine{},
		&models.TempAttachment{},
		&models.Invoice{},
		&models.PersonnelEntry{},
		&models.SalaryRemainder{},
		&models.BankDeposit{},
		&models.Supplier{},
		&models.Designation{},
		&models.Employee{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erreur AutoMigrate: %v", err)
	}

	// AutoMigrate sometimes skips the composite unique index when the table
	// pre-exists; enforce it, line-number stability depends on it.
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_sheet_lines_key ON sheet_lines(date, category, line_number)")
	DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_temp_attachments_key ON temp_attachments(date, category, line_number)")

	log.Println("Base de données connectée. Migration terminée.")
}
