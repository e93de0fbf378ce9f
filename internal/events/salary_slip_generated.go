package events

import "time"

const SalarySlipGeneratedTopic = "hr.payroll.salary_slip.generated.v1"

type SalarySlipGeneratedEvent struct {
	EventType    string    `json:"event_type"`
	SalarySlipID string    `json:"salary_slip_id"`
	CompanyID    string    `json:"company_id"`
	EmployeeName string    `json:"employee_name"`
	SlipNumber   string    `json:"slip_number"`
	PeriodStart  string    `json:"period_start"`
	PeriodEnd    string    `json:"period_end"`
	NetPayable   int64     `json:"net_payable"`
	PayslipURL   string    `json:"payslip_url"`
	GeneratedBy  string    `json:"generated_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
