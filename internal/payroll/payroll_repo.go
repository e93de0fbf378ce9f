package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	payrollerrors "go-payslip/internal/payroll/errors"
	"go-payslip/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueSalarySlipPeriod = "uq_salary_slip_period"

type SalarySlipFilter struct {
	EmployeeName string
	PeriodFrom   *time.Time
	PeriodTo     *time.Time
	Limit        int
	Offset       int
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *SalarySlip) error
	Update(ctx context.Context, slip *SalarySlip) error
	FindByPeriod(ctx context.Context, companyID, employeeName string, start, end time.Time) (*SalarySlip, error)
	FindAllByCompany(ctx context.Context, companyID string, filter SalarySlipFilter) ([]SalarySlip, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalarySlip, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn returns a session bound to the request context and, when set, the
// caller's transaction.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, slip *SalarySlip) error {
	return mapWriteError(r.conn(ctx).Create(slip).Error)
}

func (r *repository) Update(ctx context.Context, slip *SalarySlip) error {
	return mapWriteError(r.conn(ctx).Save(slip).Error)
}

func (r *repository) FindByPeriod(
	ctx context.Context,
	companyID, employeeName string,
	start, end time.Time,
) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_name = ? AND period_start = ? AND period_end = ?", employeeName, start, end).
		First(&slip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

func (r *repository) FindAllByCompany(
	ctx context.Context,
	companyID string,
	filter SalarySlipFilter,
) ([]SalarySlip, int64, error) {
	query := r.conn(ctx).
		Model(&SalarySlip{}).
		Scopes(tenant.Scope(companyID))

	if name := strings.TrimSpace(filter.EmployeeName); name != "" {
		query = query.Where("employee_name ILIKE ?", "%"+name+"%")
	}
	if filter.PeriodFrom != nil {
		query = query.Where("period_start >= ?", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		query = query.Where("period_end <= ?", *filter.PeriodTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var slips []SalarySlip
	err := query.
		Order("period_start DESC, employee_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&slips).Error
	return slips, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&slip, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payrollerrors.ErrSalarySlipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueSalarySlipViolation(err) {
		return payrollerrors.ErrSalarySlipConflict.WithCause(err)
	}
	return err
}

func isUniqueSalarySlipViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == uniqueSalarySlipPeriod
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueSalarySlipPeriod)
}
