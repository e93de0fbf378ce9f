package salary

import (
	"math"

	salaryerrors "go-payslip/internal/salary/errors"
	"go-payslip/internal/shared/numword"

	"github.com/shopspring/decimal"
)

const ProfessionalTax int64 = 200

var (
	basicRate = decimal.RequireFromString("0.5")
	hraRate   = decimal.RequireFromString("0.2")
	daRate    = decimal.RequireFromString("0.53")
	pfRate    = decimal.RequireFromString("0.03")
	twelve    = decimal.NewFromInt(12)
	half      = decimal.RequireFromString("0.5")
)

// divisionPrecision keeps monthly CTC exact well past the rounding step.
const divisionPrecision = 16

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// Calculate splits a yearly CTC into one month's components. Special
// allowance is the remainder after basic, HRA and DA are rounded
// independently, so gross lands within rounding distance of monthly CTC.
func Calculate(yearlyCTC float64) (Components, error) {
	if yearlyCTC < 0 || math.IsNaN(yearlyCTC) || math.IsInf(yearlyCTC, 0) {
		return Components{}, salaryerrors.ErrNegativeCTC
	}

	monthly := decimal.NewFromFloat(yearlyCTC).DivRound(twelve, divisionPrecision)

	basic := roundHalfUp(monthly.Mul(basicRate))
	hra := roundHalfUp(monthly.Mul(hraRate))
	da := roundHalfUp(decimal.NewFromInt(basic).Mul(daRate))
	special := roundHalfUp(monthly.Sub(decimal.NewFromInt(basic + hra + da)))

	totalAllowance := hra + da + special
	monthlyCTC, _ := monthly.Float64()

	return Components{
		MonthlyCTC:     monthlyCTC,
		Basic:          basic,
		HRA:            hra,
		DA:             da,
		Special:        special,
		TotalAllowance: totalAllowance,
		GrossSalary:    basic + totalAllowance,
	}, nil
}

// ProrateLeave charges rate/workingDays for every day between working and
// payable days.
func ProrateLeave(summary AttendanceSummary, rate int64) (int64, error) {
	if summary.WorkingDays <= 0 {
		return 0, salaryerrors.ErrZeroWorkingDays
	}
	if summary.PayableDays > summary.WorkingDays {
		return 0, salaryerrors.ErrPayableExceedsWorking
	}

	working := decimal.NewFromFloat(summary.WorkingDays)
	perDay := decimal.NewFromInt(rate).DivRound(working, divisionPrecision)
	totalLeaves := working.Sub(decimal.NewFromFloat(summary.PayableDays))

	return roundHalfUp(perDay.Mul(totalLeaves)), nil
}

// Aggregate combines the statutory and ad-hoc deductions and floors the
// net payable amount at zero.
func Aggregate(components Components, leaveDeduction, tds, incentive int64) PayableResult {
	pf := roundHalfUp(decimal.NewFromInt(components.GrossSalary).Mul(pfRate))

	deductions := Deductions{
		LeaveDeduction:  leaveDeduction,
		ProfessionalTax: ProfessionalTax,
		PF:              pf,
		TDS:             tds,
		Total:           leaveDeduction + ProfessionalTax + pf + tds,
	}

	net := components.GrossSalary - deductions.Total + incentive
	if net < 0 {
		net = 0
	}

	return PayableResult{
		GrossSalary:     components.GrossSalary,
		Deductions:      deductions,
		IncentiveAmount: incentive,
		NetPayable:      net,
	}
}

// Derive runs the full computation for one employee and period. The leave
// deduction is prorated against gross salary.
func Derive(in Inputs, grouping numword.Grouping) (Breakdown, error) {
	if in.IncentiveAmount < 0 || in.TDS < 0 || in.Bonus < 0 || in.Advance < 0 {
		return Breakdown{}, salaryerrors.ErrNegativeAdjustment
	}

	components, err := Calculate(in.YearlyCTC)
	if err != nil {
		return Breakdown{}, err
	}

	leaveDeduction, err := ProrateLeave(in.Attendance, components.GrossSalary)
	if err != nil {
		return Breakdown{}, err
	}

	payable := Aggregate(components, leaveDeduction, in.TDS, in.IncentiveAmount)

	return Breakdown{
		Components:    components,
		Deductions:    payable.Deductions,
		Payable:       payable,
		AmountInWords: numword.Rupees(payable.NetPayable, grouping),
	}, nil
}
