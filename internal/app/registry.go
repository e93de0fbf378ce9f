package app

import (
	"database/sql"
	"errors"
	"net/http"

	"go-payslip/internal/asset"
	"go-payslip/internal/attendance"
	"go-payslip/internal/company"
	"go-payslip/internal/messaging/kafka"
	"go-payslip/internal/payroll"
	"go-payslip/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildPayrollService assembles the slip pipeline shared by the API and
// the consumer. rdb may be nil, in which case caching is off and the
// generation guard is process-local.
func buildPayrollService(
	cfg Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) (payroll.Service, error) {
	if cfg.AttendanceBaseURL == "" {
		return nil, errors.New("ATTENDANCE_API_BASE_URL is required")
	}

	profiles, err := company.NewFileRepository(cfg.CompanyProfilePath)
	if err != nil {
		return nil, err
	}

	attendanceRepo := attendance.NewRepository(cfg.AttendanceBaseURL, &http.Client{Timeout: cfg.AttendanceTimeout})
	attendanceService := attendance.NewService(attendanceRepo, rdb, logger)

	var guard payroll.Guard
	if rdb != nil {
		guard = payroll.NewRedisGuard(rdb, cfg.GenerationLockTTL)
	}

	return payroll.NewService(payroll.Dependencies{
		DB:       db,
		Repo:     payroll.NewRepository(gormDB),
		Counter:  counter.NewRepository(gormDB),
		Outbox:   kafka.NewOutboxRepository(db),
		Reports:  attendanceService,
		Profiles: profiles,
		Assets:   asset.NewResolver(&http.Client{}, cfg.AssetTimeout, logger),
		Storage:  payroll.NewLocalStorage(cfg.StorageDir, cfg.PublicBaseURL),
		Guard:    guard,
	}, logger), nil
}

func registerModules(
	router *gin.Engine,
	cfg Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	payrollService, err := buildPayrollService(cfg, db, gormDB, rdb, logger)
	if err != nil {
		return err
	}
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// stored payslips are served from the same origin as PAYSLIP_PUBLIC_BASE_URL
	router.Static("/files/payslips", cfg.StorageDir)

	api := router.Group("/api/v1")
	{
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
