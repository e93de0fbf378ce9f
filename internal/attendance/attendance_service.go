package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-payslip/internal/attendance/errors"
	"go-payslip/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	SalaryReportKeyPrefix = "attendance:salary_report:"
	salaryReportTTL       = 5 * time.Minute
)

func GetSalaryReportKey(q Query) string {
	return SalaryReportKeyPrefix + strings.Join([]string{
		q.CompanyID,
		strings.ToLower(strings.TrimSpace(q.EmployeeName)),
		q.StartDate.Format(dateLayout),
		q.EndDate.Format(dateLayout),
	}, ":")
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetSalaryReport(ctx context.Context, q Query) (Report, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetSalaryReport(ctx context.Context, q Query) (Report, error) {
	if strings.TrimSpace(q.EmployeeName) == "" || q.StartDate.IsZero() || q.EndDate.IsZero() || q.StartDate.After(q.EndDate) {
		return Report{}, attendanceerrors.ErrInvalidQuery
	}

	log := contextutil.GetLogger(ctx, s.logger)
	cacheKey := GetSalaryReportKey(q)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var report Report
			if json.Unmarshal([]byte(cached), &report) == nil {
				return report, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("salary report cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		report, err := s.repo.FetchSalaryReport(ctx, q)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(report); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(payload), salaryReportTTL).Err(); err != nil {
					log.Warn("salary report cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return report, nil
	})
	if err != nil {
		log.Error("fetch salary report failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_name", q.EmployeeName),
			zap.Error(err),
		)
		return Report{}, err
	}

	return v.(Report), nil
}
