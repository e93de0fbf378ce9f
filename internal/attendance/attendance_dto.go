package attendance

import (
	"math"
	"time"

	"go-payslip/internal/salary"
)

type Query struct {
	CompanyID    string
	EmployeeName string
	StartDate    time.Time
	EndDate      time.Time
}

// Report is the attendance-derived salary report served by the HR backend.
type Report struct {
	UID           string  `json:"uid"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	JobRole       string  `json:"jobRole"`
	Department    string  `json:"department"`
	JoiningDate   string  `json:"joiningDate"`
	YearlyCTC     float64 `json:"yearlyCTC"`
	WorkingDays   float64 `json:"workingDays"`
	PayableDays   float64 `json:"payableDays"`
	LeaveTaken    float64 `json:"leaveTaken"`
	HalfDay       float64 `json:"halfDay"`
	Bonus         float64 `json:"bonus"`
	TDS           float64 `json:"tds"`
	Advance       float64 `json:"advance"`
	BankName      string  `json:"bankName"`
	BankAccountNo string  `json:"bankAccountNo"`
	BankIfscCode  string  `json:"bankIfscCode"`
	BranchName    string  `json:"branchName"`
}

// Inputs turns the report into the immutable computation input for one period.
func (r Report) Inputs(incentive int64, start, end time.Time) salary.Inputs {
	return salary.Inputs{
		YearlyCTC:       r.YearlyCTC,
		IncentiveAmount: incentive,
		Attendance: salary.AttendanceSummary{
			WorkingDays: r.WorkingDays,
			PayableDays: r.PayableDays,
			LeaveTaken:  r.LeaveTaken,
			HalfDay:     r.HalfDay,
		},
		Bonus:   wholeUnits(r.Bonus),
		TDS:     wholeUnits(r.TDS),
		Advance: wholeUnits(r.Advance),
		Bank: salary.BankDetails{
			BankName:      r.BankName,
			BankAccountNo: r.BankAccountNo,
			BankIfscCode:  r.BankIfscCode,
			BranchName:    r.BranchName,
		},
		Employee: salary.EmployeeIdentity{
			UID:         r.UID,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			JobRole:     r.JobRole,
			Department:  r.Department,
			JoiningDate: r.JoiningDate,
		},
		PeriodStart: start,
		PeriodEnd:   end,
	}
}

func wholeUnits(v float64) int64 {
	return int64(math.Round(v))
}
