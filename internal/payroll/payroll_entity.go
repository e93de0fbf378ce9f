package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalarySlip records one generated salary slip. Money columns hold whole
// currency units.
type SalarySlip struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_salary_slip_period,priority:1"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeUID  string     `gorm:"type:varchar(64)"`
	EmployeeName string     `gorm:"type:varchar(150);not null;uniqueIndex:uq_salary_slip_period,priority:2"`
	SlipNumber   string     `gorm:"type:varchar(32);not null"`

	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:uq_salary_slip_period,priority:3"`
	PeriodEnd   time.Time `gorm:"type:date;not null;uniqueIndex:uq_salary_slip_period,priority:4"`

	YearlyCTC       decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	GrossSalary     int64           `gorm:"type:bigint;not null;default:0"`
	LeaveDeduction  int64           `gorm:"type:bigint;not null;default:0"`
	ProfessionalTax int64           `gorm:"type:bigint;not null;default:0"`
	ProvidentFund   int64           `gorm:"type:bigint;not null;default:0"`
	TDS             int64           `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64           `gorm:"type:bigint;not null;default:0"`
	IncentiveAmount int64           `gorm:"type:bigint;not null;default:0"`
	NetPayable      int64           `gorm:"type:bigint;not null;default:0"`
	AmountInWords   string          `gorm:"type:text"`

	FileName    string    `gorm:"type:varchar(255);not null"`
	PayslipURL  string    `gorm:"type:text;not null"`
	GeneratedBy uuid.UUID `gorm:"type:uuid;not null"`
	GeneratedAt time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SalarySlip) TableName() string {
	return "salary_slips"
}
