package salary

import "time"

// Money amounts are whole currency units. Only the yearly CTC may carry a
// fraction, since monthly derivation divides it before rounding.

type AttendanceSummary struct {
	WorkingDays float64 `json:"working_days"`
	PayableDays float64 `json:"payable_days"`
	LeaveTaken  float64 `json:"leave_taken"`
	HalfDay     float64 `json:"half_day"`
}

type BankDetails struct {
	BankName      string `json:"bank_name"`
	BankAccountNo string `json:"bank_account_no"`
	BankIfscCode  string `json:"bank_ifsc_code"`
	BranchName    string `json:"branch_name"`
}

type EmployeeIdentity struct {
	UID         string `json:"uid"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	JobRole     string `json:"job_role"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}

func (e EmployeeIdentity) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Inputs is everything one salary computation needs. It is built fresh per
// request and never mutated afterwards.
type Inputs struct {
	YearlyCTC       float64           `json:"yearly_ctc"`
	IncentiveAmount int64             `json:"incentive_amount"`
	Attendance      AttendanceSummary `json:"attendance"`
	Bonus           int64             `json:"bonus"`
	TDS             int64             `json:"tds"`
	Advance         int64             `json:"advance"`
	Bank            BankDetails       `json:"bank"`
	Employee        EmployeeIdentity  `json:"employee"`
	PeriodStart     time.Time         `json:"period_start"`
	PeriodEnd       time.Time         `json:"period_end"`
}

type Components struct {
	MonthlyCTC     float64 `json:"monthly_ctc"`
	Basic          int64   `json:"basic"`
	HRA            int64   `json:"hra"`
	DA             int64   `json:"da"`
	Special        int64   `json:"special"`
	TotalAllowance int64   `json:"total_allowance"`
	GrossSalary    int64   `json:"gross_salary"`
}

type Deductions struct {
	LeaveDeduction  int64 `json:"leave_deduction"`
	ProfessionalTax int64 `json:"professional_tax"`
	PF              int64 `json:"pf"`
	TDS             int64 `json:"tds"`
	Total           int64 `json:"total"`
}

type PayableResult struct {
	GrossSalary     int64      `json:"gross_salary"`
	Deductions      Deductions `json:"deductions"`
	IncentiveAmount int64      `json:"incentive_amount"`
	NetPayable      int64      `json:"net_payable"`
}

type Breakdown struct {
	Components    Components    `json:"components"`
	Deductions    Deductions    `json:"deductions"`
	Payable       PayableResult `json:"payable"`
	AmountInWords string        `json:"amount_in_words"`
}
