package salaryerrors

import (
	"net/http"

	"go-payslip/internal/shared/apperror"
)

var (
	ErrNegativeCTC = apperror.New(
		apperror.CodeInvalidInput,
		"yearly ctc cannot be negative",
		http.StatusBadRequest,
	)
	ErrZeroWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"working days must be greater than zero",
		http.StatusBadRequest,
	)
	ErrPayableExceedsWorking = apperror.New(
		apperror.CodeInvalidInput,
		"payable days cannot exceed working days",
		http.StatusBadRequest,
	)
	ErrNegativeAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"incentive, tds, bonus and advance cannot be negative",
		http.StatusBadRequest,
	)
)
