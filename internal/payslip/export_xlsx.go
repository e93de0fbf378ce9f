package payslip

import (
	paysliperrors "go-payslip/internal/payslip/errors"

	"github.com/xuri/excelize/v2"
)

const breakdownSheet = "Salary Slip"

// ExportXLSX writes the salary breakdown as a single-sheet workbook.
func ExportXLSX(data Data) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", breakdownSheet); err != nil {
		return nil, paysliperrors.ErrRenderFailed.WithCause(err)
	}

	bd := data.Breakdown
	rows := [][]interface{}{
		{data.Company.Name},
		{PeriodTitle(data.PeriodStart, data.PeriodEnd)},
		{},
	}
	if data.SlipNumber != "" {
		rows = append(rows, []interface{}{"Slip Number", data.SlipNumber})
	}
	rows = append(rows,
		[]interface{}{"Employee Name", data.Employee.FullName(), "Employee ID", data.Employee.UID},
		[]interface{}{"Designation", data.Employee.JobRole, "Department", data.Employee.Department},
		[]interface{}{"Working Days", data.Attendance.WorkingDays, "Payable Days", data.Attendance.PayableDays},
		[]interface{}{"Bank Name", data.Bank.BankName, "Account No.", data.Bank.BankAccountNo},
		[]interface{}{},
		[]interface{}{"Earnings", "Amount", "Deductions", "Amount"},
	)
	tableHeader := len(rows)

	for _, l := range SalaryLines(bd) {
		row := []interface{}{l.Earning, nil, l.Deduction, nil}
		if l.Earning != "" {
			row[1] = l.EarningAmount
		}
		if l.Deduction != "" {
			row[3] = l.DeductionAmount
		}
		rows = append(rows, row)
	}
	rows = append(rows, []interface{}{"Net Payable", bd.Payable.NetPayable, bd.AmountInWords})

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(breakdownSheet, cell, &row); err != nil {
			return nil, paysliperrors.ErrRenderFailed.WithCause(err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, paysliperrors.ErrRenderFailed.WithCause(err)
	}
	for _, r := range []int{1, tableHeader, len(rows)} {
		_ = f.SetCellStyle(breakdownSheet, cellName(1, r), cellName(4, r), bold)
	}
	_ = f.SetColWidth(breakdownSheet, "A", "D", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, paysliperrors.ErrRenderFailed.WithCause(err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
