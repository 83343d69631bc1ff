package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonnelKind: which per-day personnel list an entry belongs to.
type PersonnelKind string

const (
	PersonnelAdvance         PersonnelKind = "advance"          // avance
	PersonnelDoubling        PersonnelKind = "doubling"         // doublage
	PersonnelExtra           PersonnelKind = "extra"
	PersonnelBonus           PersonnelKind = "bonus"            // prime
	PersonnelSalaryRemainder PersonnelKind = "salary_remainder" // reste salaire (daily)
)

// PersonnelEntry: a disbursement to an employee, drawn against one day.
// These never carry line numbers or attachments; they only feed the day's
// expense total.
type PersonnelEntry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Date         time.Time       `gorm:"type:date;index;not null" json:"-"`
	Kind         PersonnelKind   `gorm:"size:20;index;not null" json:"kind"`
	EmployeeName string          `gorm:"size:100;not null" json:"employee_name"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"amount"`
	DaysCount    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"days_count"` // salary remainders only
	Details      string          `gorm:"size:500" json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SalaryRemainderGlobalName: the aggregate sentinel employee name. Rows with
// this name may repeat within a month; every other employee is upserted to
// one row per (name, month).
const SalaryRemainderGlobalName = "Restes Salaires"

// SalaryRemainder: monthly carried-over salary balance per employee.
type SalaryRemainder struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EmployeeName string          `gorm:"size:100;index:idx_salary_remainders_month;not null" json:"employee_name"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"amount"`
	Month        string          `gorm:"size:7;index:idx_salary_remainders_month;not null" json:"month"` // "YYYY-MM"
	Status       string          `gorm:"size:20;not null;default:confirmed" json:"status"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
