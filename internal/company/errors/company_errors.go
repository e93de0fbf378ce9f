package companyerrors

import (
	"go-payslip/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company profile not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyProfile = apperror.New(
		apperror.CodeInvalidInput,
		"Company profile requires company_id",
		http.StatusBadRequest,
	)

	ErrInvalidWordsGrouping = apperror.New(
		apperror.CodeInvalidInput,
		"words_grouping must be western or indian",
		http.StatusBadRequest,
	)
)
