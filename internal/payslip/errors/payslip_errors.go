package paysliperrors

import (
	"net/http"

	"go-payslip/internal/shared/apperror"
)

var (
	ErrInvalidLayoutTransition = apperror.New(
		apperror.CodeInvalidState,
		"payslip sections must be placed in order",
		http.StatusInternalServerError,
	)
	ErrInvalidColumnFractions = apperror.New(
		apperror.CodeInternalError,
		"row column fractions must be positive and sum to 1",
		http.StatusInternalServerError,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to render payslip document",
		http.StatusInternalServerError,
	)
)
