package attendanceerrors

import (
	"net/http"

	"go-payslip/internal/shared/apperror"
)

var (
	ErrUpstreamFetch = apperror.New(
		apperror.CodeUpstreamFetch,
		"failed to fetch attendance report",
		http.StatusBadGateway,
	)
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance report not found for employee and period",
		http.StatusNotFound,
	)
	ErrInvalidQuery = apperror.New(
		apperror.CodeInvalidInput,
		"employee name and a valid date range are required",
		http.StatusBadRequest,
	)
)
