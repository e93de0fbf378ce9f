package events

import "time"

const SalarySlipRequestedTopic = "hr.payroll.salary_slip.requested.v1"

type SalarySlipRequestedEvent struct {
	EventType       string    `json:"event_type"`
	CompanyID       string    `json:"company_id"`
	EmployeeID      string    `json:"employee_id,omitempty"`
	EmployeeName    string    `json:"employee_name"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	IncentiveAmount int64     `json:"incentive_amount"`
	RequestedBy     string    `json:"requested_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}
