package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	attendanceerrors "go-payslip/internal/attendance/errors"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	FetchSalaryReport(ctx context.Context, q Query) (Report, error)
}

// repository reads salary reports from the external HR backend over HTTP.
type repository struct {
	baseURL string
	client  *http.Client
}

func NewRepository(baseURL string, client *http.Client) Repository {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &repository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (r *repository) FetchSalaryReport(ctx context.Context, q Query) (Report, error) {
	params := url.Values{}
	params.Set("employeeName", q.EmployeeName)
	params.Set("startDate", q.StartDate.Format(dateLayout))
	params.Set("endDate", q.EndDate.Format(dateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/salary-report?"+params.Encode(), nil)
	if err != nil {
		return Report{}, attendanceerrors.ErrUpstreamFetch.WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if q.CompanyID != "" {
		req.Header.Set("X-Company-ID", q.CompanyID)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Report{}, attendanceerrors.ErrUpstreamFetch.WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Report{}, attendanceerrors.ErrReportNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Report{}, attendanceerrors.ErrUpstreamFetch.WithCause(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		)
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return Report{}, attendanceerrors.ErrUpstreamFetch.WithCause(err)
	}
	return report, nil
}
