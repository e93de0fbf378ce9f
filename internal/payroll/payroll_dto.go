package payroll

import (
	"strings"
	"time"

	payrollerrors "go-payslip/internal/payroll/errors"
	"go-payslip/internal/salary"
)

const dateLayout = "2006-01-02"

type SalarySlipRequest struct {
	EmployeeName    string `json:"employee_name" binding:"required"`
	EmployeeID      string `json:"employee_id" binding:"omitempty,uuid"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	IncentiveAmount int64  `json:"incentive_amount" binding:"gte=0"`
}

// period validates the request and returns its date range.
func (r SalarySlipRequest) period() (time.Time, time.Time, error) {
	if strings.TrimSpace(r.EmployeeName) == "" {
		return time.Time{}, time.Time{}, payrollerrors.ErrEmployeeNameRequired
	}
	if r.IncentiveAmount < 0 {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidIncentive
	}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

type GetSalarySlipsFilterRequest struct {
	EmployeeName string `form:"employee_name"`
	PeriodFrom   string `form:"period_from"`
	PeriodTo     string `form:"period_to"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type BreakdownResponse struct {
	EmployeeName string                   `json:"employee_name"`
	EmployeeUID  string                   `json:"employee_uid"`
	StartDate    string                   `json:"start_date"`
	EndDate      string                   `json:"end_date"`
	Attendance   salary.AttendanceSummary `json:"attendance"`
	Bank         salary.BankDetails       `json:"bank"`
	Breakdown    salary.Breakdown         `json:"breakdown"`
}

type SalarySlipResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      *string `json:"employee_id,omitempty"`
	EmployeeUID     string  `json:"employee_uid"`
	EmployeeName    string  `json:"employee_name"`
	SlipNumber      string  `json:"slip_number"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	YearlyCTC       string  `json:"yearly_ctc"`
	GrossSalary     int64   `json:"gross_salary"`
	LeaveDeduction  int64   `json:"leave_deduction"`
	ProfessionalTax int64   `json:"professional_tax"`
	ProvidentFund   int64   `json:"provident_fund"`
	TDS             int64   `json:"tds"`
	TotalDeductions int64   `json:"total_deductions"`
	IncentiveAmount int64   `json:"incentive_amount"`
	NetPayable      int64   `json:"net_payable"`
	AmountInWords   string  `json:"amount_in_words"`
	FileName        string  `json:"file_name"`
	PayslipURL      string  `json:"payslip_url"`
	GeneratedBy     string  `json:"generated_by"`
	GeneratedAt     string  `json:"generated_at"`
}

type SalarySlipRequestedResponse struct {
	RequestID    string `json:"request_id"`
	EmployeeName string `json:"employee_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
}

// File is a generated document ready to be streamed.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}
