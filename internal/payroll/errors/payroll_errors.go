package payrollerrors

import (
	"net/http"

	"go-payslip/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidSalarySlipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary slip id",
		http.StatusBadRequest,
	)
	ErrEmployeeNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_name is required",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidIncentive = apperror.New(
		apperror.CodeInvalidInput,
		"incentive_amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrSalarySlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary slip not found",
		http.StatusNotFound,
	)
	ErrSalarySlipConflict = apperror.New(
		apperror.CodeConflict,
		"salary slip for this employee and period is being written concurrently",
		http.StatusConflict,
	)
	ErrGenerationInProgress = apperror.New(
		apperror.CodeConflict,
		"a salary slip for this employee and period is already being generated",
		http.StatusConflict,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"payslip is not generated yet",
		http.StatusNotFound,
	)
	ErrQueueUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"salary slip queue is not configured",
		http.StatusServiceUnavailable,
	)
	ErrPayslipStorage = apperror.New(
		apperror.CodeInternalError,
		"failed to store payslip document",
		http.StatusInternalServerError,
	)
)
