package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payslip/internal/attendance"
	attendanceerrors "go-payslip/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func testQuery() attendance.Query {
	return attendance.Query{
		CompanyID:    "acme",
		EmployeeName: "John Doe",
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestRepository_FetchSalaryReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/salary-report", r.URL.Path)
			assert.Equal(t, "John Doe", r.URL.Query().Get("employeeName"))
			assert.Equal(t, "2024-01-01", r.URL.Query().Get("startDate"))
			assert.Equal(t, "2024-01-31", r.URL.Query().Get("endDate"))
			assert.Equal(t, "acme", r.Header.Get("X-Company-ID"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"uid":         "EMP-1",
				"firstName":   "John",
				"lastName":    "Doe",
				"yearlyCTC":   600000,
				"workingDays": 30,
				"payableDays": 28,
				"tds":         150.4,
			})
		}))
		defer srv.Close()

		repo := attendance.NewRepository(srv.URL+"/", srv.Client())
		report, err := repo.FetchSalaryReport(context.Background(), testQuery())

		assert.NoError(t, err)
		assert.Equal(t, "EMP-1", report.UID)
		assert.Equal(t, 600000.0, report.YearlyCTC)
		assert.Equal(t, 28.0, report.PayableDays)
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := attendance.NewRepository(srv.URL, srv.Client()).FetchSalaryReport(context.Background(), testQuery())

		assert.ErrorIs(t, err, attendanceerrors.ErrReportNotFound)
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}))
		defer srv.Close()

		_, err := attendance.NewRepository(srv.URL, srv.Client()).FetchSalaryReport(context.Background(), testQuery())

		assert.ErrorIs(t, err, attendanceerrors.ErrUpstreamFetch)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		_, err := attendance.NewRepository(srv.URL, srv.Client()).FetchSalaryReport(context.Background(), testQuery())

		assert.ErrorIs(t, err, attendanceerrors.ErrUpstreamFetch)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		_, err := attendance.NewRepository("http://127.0.0.1:1", nil).FetchSalaryReport(context.Background(), testQuery())

		assert.ErrorIs(t, err, attendanceerrors.ErrUpstreamFetch)
	})
}

func TestReport_Inputs(t *testing.T) {
	report := attendance.Report{
		UID:         "EMP-1",
		FirstName:   "John",
		LastName:    "Doe",
		YearlyCTC:   600000,
		WorkingDays: 30,
		PayableDays: 28,
		TDS:         150.6,
		BankName:    "HDFC",
	}
	q := testQuery()

	in := report.Inputs(2500, q.StartDate, q.EndDate)

	assert.Equal(t, int64(2500), in.IncentiveAmount)
	assert.Equal(t, int64(151), in.TDS)
	assert.Equal(t, "John Doe", in.Employee.FullName())
	assert.Equal(t, "HDFC", in.Bank.BankName)
	assert.Equal(t, 28.0, in.Attendance.PayableDays)
	assert.Equal(t, q.EndDate, in.PeriodEnd)
}
