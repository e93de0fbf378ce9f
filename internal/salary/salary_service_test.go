package salary_test

import (
	"math"
	"math/rand"
	"testing"

	"go-payslip/internal/salary"
	salaryerrors "go-payslip/internal/salary/errors"
	"go-payslip/internal/shared/numword"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Run("yearly ctc 600000", func(t *testing.T) {
		c, err := salary.Calculate(600000)

		assert.NoError(t, err)
		assert.Equal(t, 50000.0, c.MonthlyCTC)
		assert.Equal(t, int64(25000), c.Basic)
		assert.Equal(t, int64(10000), c.HRA)
		assert.Equal(t, int64(13250), c.DA)
		assert.Equal(t, int64(1750), c.Special)
		assert.Equal(t, int64(25000), c.TotalAllowance)
		assert.Equal(t, int64(50000), c.GrossSalary)
	})

	t.Run("zero ctc yields zero components", func(t *testing.T) {
		c, err := salary.Calculate(0)

		assert.NoError(t, err)
		assert.Equal(t, salary.Components{}, c)
	})

	t.Run("negative ctc rejected", func(t *testing.T) {
		_, err := salary.Calculate(-1)

		assert.ErrorIs(t, err, salaryerrors.ErrNegativeCTC)
	})

	t.Run("gross reconstructs monthly ctc", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 2000; i++ {
			ctc := float64(rng.Int63n(50_000_000))
			if i%3 == 0 {
				ctc += rng.Float64()
			}

			c, err := salary.Calculate(ctc)

			assert.NoError(t, err)
			assert.Equal(t, c.GrossSalary, c.Basic+c.TotalAllowance, "ctc=%v", ctc)
			assert.Equal(t, c.TotalAllowance, c.HRA+c.DA+c.Special, "ctc=%v", ctc)
			assert.LessOrEqual(t, math.Abs(float64(c.GrossSalary)-ctc/12), 2.0, "ctc=%v", ctc)
		}
	})
}

func TestProrateLeave(t *testing.T) {
	t.Run("two days of leave", func(t *testing.T) {
		d, err := salary.ProrateLeave(salary.AttendanceSummary{WorkingDays: 30, PayableDays: 28}, 50000)

		assert.NoError(t, err)
		assert.Equal(t, int64(3333), d)
	})

	t.Run("half day counts as half", func(t *testing.T) {
		d, err := salary.ProrateLeave(salary.AttendanceSummary{WorkingDays: 20, PayableDays: 19.5}, 40000)

		assert.NoError(t, err)
		assert.Equal(t, int64(1000), d)
	})

	t.Run("full attendance", func(t *testing.T) {
		d, err := salary.ProrateLeave(salary.AttendanceSummary{WorkingDays: 26, PayableDays: 26}, 50000)

		assert.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("zero working days rejected", func(t *testing.T) {
		_, err := salary.ProrateLeave(salary.AttendanceSummary{WorkingDays: 0, PayableDays: 0}, 50000)

		assert.ErrorIs(t, err, salaryerrors.ErrZeroWorkingDays)
	})

	t.Run("payable above working rejected", func(t *testing.T) {
		_, err := salary.ProrateLeave(salary.AttendanceSummary{WorkingDays: 20, PayableDays: 21}, 50000)

		assert.ErrorIs(t, err, salaryerrors.ErrPayableExceedsWorking)
	})
}

func TestAggregate(t *testing.T) {
	components := salary.Components{GrossSalary: 50000}

	t.Run("scenario totals", func(t *testing.T) {
		res := salary.Aggregate(components, 3333, 0, 0)

		assert.Equal(t, int64(1500), res.Deductions.PF)
		assert.Equal(t, salary.ProfessionalTax, res.Deductions.ProfessionalTax)
		assert.Equal(t, int64(5033), res.Deductions.Total)
		assert.Equal(t, int64(44967), res.NetPayable)
	})

	t.Run("incentive is added after deductions", func(t *testing.T) {
		res := salary.Aggregate(components, 0, 1000, 2500)

		assert.Equal(t, int64(2700), res.Deductions.Total)
		assert.Equal(t, int64(49800), res.NetPayable)
	})

	t.Run("net payable never negative", func(t *testing.T) {
		res := salary.Aggregate(salary.Components{GrossSalary: 1000}, 900, 5000, 0)

		assert.Greater(t, res.Deductions.Total, res.GrossSalary)
		assert.Zero(t, res.NetPayable)
	})

	t.Run("total is the sum of parts", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 500; i++ {
			gross := rng.Int63n(500000)
			res := salary.Aggregate(salary.Components{GrossSalary: gross}, rng.Int63n(gross+1), rng.Int63n(20000), rng.Int63n(20000))

			d := res.Deductions
			assert.Equal(t, d.LeaveDeduction+d.ProfessionalTax+d.PF+d.TDS, d.Total)
			assert.GreaterOrEqual(t, res.NetPayable, int64(0))
		}
	})
}

func TestDerive(t *testing.T) {
	in := salary.Inputs{
		YearlyCTC:  600000,
		Attendance: salary.AttendanceSummary{WorkingDays: 30, PayableDays: 28, LeaveTaken: 2},
	}

	t.Run("end to end", func(t *testing.T) {
		b, err := salary.Derive(in, numword.GroupingWestern)

		assert.NoError(t, err)
		assert.Equal(t, int64(50000), b.Components.GrossSalary)
		assert.Equal(t, int64(3333), b.Deductions.LeaveDeduction)
		assert.Equal(t, int64(5033), b.Deductions.Total)
		assert.Equal(t, int64(44967), b.Payable.NetPayable)
		assert.Equal(t, "Forty Four Thousand Nine Hundred Sixty Seven Rupees Only", b.AmountInWords)
	})

	t.Run("zero working days is an input error", func(t *testing.T) {
		bad := in
		bad.Attendance.WorkingDays = 0

		_, err := salary.Derive(bad, numword.GroupingWestern)

		assert.ErrorIs(t, err, salaryerrors.ErrZeroWorkingDays)
	})

	t.Run("negative incentive rejected", func(t *testing.T) {
		bad := in
		bad.IncentiveAmount = -10

		_, err := salary.Derive(bad, numword.GroupingWestern)

		assert.ErrorIs(t, err, salaryerrors.ErrNegativeAdjustment)
	})
}
