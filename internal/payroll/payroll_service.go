package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"path"
	"strings"
	"time"

	"go-payslip/internal/asset"
	"go-payslip/internal/attendance"
	"go-payslip/internal/company"
	"go-payslip/internal/events"
	"go-payslip/internal/messaging/kafka"
	payrollerrors "go-payslip/internal/payroll/errors"
	"go-payslip/internal/payslip"
	"go-payslip/internal/salary"
	"go-payslip/internal/shared/contextutil"
	"go-payslip/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	StatusQueued = "QUEUED"

	EventSalarySlipRequested = "salary_slip_requested"
	EventSalarySlipGenerated = "salary_slip_generated"
	AggregateSalarySlip      = "salary_slip"

	SlipCounterType  = "salary_slip_number"
	slipNumberFormat = "SLIP-%06d"

	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultPageSize = 10
	maxPageSize     = 100
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Breakdown(ctx context.Context, companyID string, req SalarySlipRequest) (BreakdownResponse, error)
	Download(ctx context.Context, companyID string, req SalarySlipRequest) (File, error)
	ExportBreakdown(ctx context.Context, companyID string, req SalarySlipRequest) (File, error)
	Generate(ctx context.Context, companyID, actorID string, req SalarySlipRequest) (SalarySlipResponse, error)
	Request(ctx context.Context, companyID, actorID string, req SalarySlipRequest) (SalarySlipRequestedResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetSalarySlipsFilterRequest) ([]SalarySlipResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (SalarySlipResponse, error)
}

type AssetResolver interface {
	ResolveAll(ctx context.Context, reqs map[string]asset.Request) map[string]asset.Image
}

type Dependencies struct {
	DB       *sql.DB
	Repo     Repository
	Counter  counter.Repository
	Outbox   kafka.OutboxRepository
	Reports  attendance.Service
	Profiles company.Repository
	Assets   AssetResolver
	Storage  Storage
	Guard    Guard
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	reports  attendance.Service
	profiles company.Repository
	assets   AssetResolver
	storage  Storage
	guard    Guard
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}

	assets := deps.Assets
	if assets == nil {
		assets = asset.NewResolver(nil, asset.DefaultTimeout, l)
	}
	guard := deps.Guard
	if guard == nil {
		guard = NewLocalGuard()
	}

	return &service{
		db:       deps.DB,
		repo:     deps.Repo,
		counter:  deps.Counter,
		outbox:   deps.Outbox,
		reports:  deps.Reports,
		profiles: deps.Profiles,
		assets:   assets,
		storage:  deps.Storage,
		guard:    guard,
		now:      time.Now,
		logger:   l,
	}
}

// slipSource is the fetched and derived state behind one salary slip.
type slipSource struct {
	start     time.Time
	end       time.Time
	inputs    salary.Inputs
	breakdown salary.Breakdown
	profile   company.Profile
	fallback  string
}

func (s slipSource) employeeName() string {
	if name := s.inputs.Employee.FullName(); name != "" {
		return name
	}
	return s.fallback
}

func (s slipSource) layoutData(slipNumber string, logo, signature asset.Image) payslip.Data {
	employee := s.inputs.Employee
	if employee.FullName() == "" {
		employee.FirstName = s.fallback
	}
	return payslip.Data{
		Company: payslip.Company{
			Name:          s.profile.Name,
			Address:       s.profile.Address,
			SignatoryName: s.profile.SignatoryName,
		},
		Employee:    employee,
		Attendance:  s.inputs.Attendance,
		Bank:        s.inputs.Bank,
		Breakdown:   s.breakdown,
		PeriodStart: s.start,
		PeriodEnd:   s.end,
		SlipNumber:  slipNumber,
		Logo:        logo,
		Signature:   signature,
	}
}

// prepare fetches the attendance report and derives the salary breakdown.
// The fetch must finish before anything is computed.
func (s *service) prepare(ctx context.Context, companyID string, req SalarySlipRequest) (slipSource, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return slipSource{}, payrollerrors.ErrInvalidCompanyID
	}
	start, end, err := req.period()
	if err != nil {
		return slipSource{}, err
	}

	name := strings.TrimSpace(req.EmployeeName)
	report, err := s.reports.GetSalaryReport(ctx, attendance.Query{
		CompanyID:    companyID,
		EmployeeName: name,
		StartDate:    start,
		EndDate:      end,
	})
	if err != nil {
		return slipSource{}, err
	}

	profile, err := s.profiles.FindByCompanyID(ctx, companyID)
	if err != nil {
		return slipSource{}, err
	}

	inputs := report.Inputs(req.IncentiveAmount, start, end)
	breakdown, err := salary.Derive(inputs, profile.WordsGrouping)
	if err != nil {
		return slipSource{}, err
	}

	return slipSource{
		start:     start,
		end:       end,
		inputs:    inputs,
		breakdown: breakdown,
		profile:   profile,
		fallback:  name,
	}, nil
}

func (s *service) acquire(ctx context.Context, companyID string, req SalarySlipRequest) (func(), error) {
	start, end, err := req.period()
	if err != nil {
		return nil, err
	}
	return s.guard.Acquire(ctx, GenerationKey(companyID, req.EmployeeName, start, end))
}

// render resolves the company images concurrently, then lays out and
// rasterizes the slip. Image failures never stop the document.
func (s *service) render(ctx context.Context, src slipSource, slipNumber string) (File, error) {
	images := s.assets.ResolveAll(ctx, map[string]asset.Request{
		"logo":      {Primary: src.profile.Logo.URL, Fallbacks: src.profile.Logo.Fallbacks},
		"signature": {Primary: src.profile.Signature.URL, Fallbacks: src.profile.Signature.Fallbacks},
	})

	opts := payslip.DefaultOptions()
	opts.Measurer = payslip.NewPDFMeasurer()

	doc, err := payslip.Layout(src.layoutData(slipNumber, images["logo"], images["signature"]), opts)
	if err != nil {
		return File{}, err
	}

	body, err := payslip.RenderPDF(doc)
	if err != nil {
		return File{}, err
	}

	return File{
		Name:        payslip.FileName(src.profile.Name, src.employeeName()),
		ContentType: ContentTypePDF,
		Body:        body,
	}, nil
}

func (s *service) Breakdown(ctx context.Context, companyID string, req SalarySlipRequest) (BreakdownResponse, error) {
	src, err := s.prepare(ctx, companyID, req)
	if err != nil {
		return BreakdownResponse{}, err
	}

	return BreakdownResponse{
		EmployeeName: src.employeeName(),
		EmployeeUID:  src.inputs.Employee.UID,
		StartDate:    src.start.Format(dateLayout),
		EndDate:      src.end.Format(dateLayout),
		Attendance:   src.inputs.Attendance,
		Bank:         src.inputs.Bank,
		Breakdown:    src.breakdown,
	}, nil
}

func (s *service) Download(ctx context.Context, companyID string, req SalarySlipRequest) (File, error) {
	release, err := s.acquire(ctx, companyID, req)
	if err != nil {
		return File{}, err
	}
	defer release()

	src, err := s.prepare(ctx, companyID, req)
	if err != nil {
		return File{}, err
	}

	return s.render(ctx, src, "")
}

func (s *service) ExportBreakdown(ctx context.Context, companyID string, req SalarySlipRequest) (File, error) {
	src, err := s.prepare(ctx, companyID, req)
	if err != nil {
		return File{}, err
	}

	body, err := payslip.ExportXLSX(src.layoutData("", asset.Image{}, asset.Image{}))
	if err != nil {
		return File{}, err
	}

	name := strings.TrimSuffix(payslip.FileName(src.profile.Name, src.employeeName()), ".pdf") + ".xlsx"
	return File{Name: name, ContentType: ContentTypeXLSX, Body: body}, nil
}

func (s *service) Generate(
	ctx context.Context,
	companyID, actorID string,
	req SalarySlipRequest,
) (SalarySlipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidActorID
	}
	var employeeUUID *uuid.UUID
	if req.EmployeeID != "" {
		id, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return SalarySlipResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
		employeeUUID = &id
	}

	release, err := s.acquire(ctx, companyID, req)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	defer release()

	src, err := s.prepare(ctx, companyID, req)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	employeeName := src.employeeName()

	existing, err := s.repo.FindByPeriod(ctx, companyID, employeeName, src.start, src.end)
	if err != nil {
		return SalarySlipResponse{}, err
	}

	var slipNumber string
	if existing != nil {
		slipNumber = existing.SlipNumber
	} else {
		slipNumber, err = counter.NextCode(ctx, s.counter, companyID, SlipCounterType, slipNumberFormat)
		if err != nil {
			return SalarySlipResponse{}, err
		}
	}

	file, err := s.render(ctx, src, slipNumber)
	if err != nil {
		return SalarySlipResponse{}, err
	}

	url, err := s.storage.Save(ctx, path.Join(companyID, src.start.Format("2006-01"), file.Name), file.Body)
	if err != nil {
		return SalarySlipResponse{}, err
	}

	bd := src.breakdown
	now := s.now().UTC()
	slip := &SalarySlip{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		EmployeeID:      employeeUUID,
		EmployeeUID:     src.inputs.Employee.UID,
		EmployeeName:    employeeName,
		SlipNumber:      slipNumber,
		PeriodStart:     src.start,
		PeriodEnd:       src.end,
		YearlyCTC:       decimal.NewFromFloat(src.inputs.YearlyCTC),
		GrossSalary:     bd.Components.GrossSalary,
		LeaveDeduction:  bd.Deductions.LeaveDeduction,
		ProfessionalTax: bd.Deductions.ProfessionalTax,
		ProvidentFund:   bd.Deductions.PF,
		TDS:             bd.Deductions.TDS,
		TotalDeductions: bd.Deductions.Total,
		IncentiveAmount: bd.Payable.IncentiveAmount,
		NetPayable:      bd.Payable.NetPayable,
		AmountInWords:   bd.AmountInWords,
		FileName:        file.Name,
		PayslipURL:      url,
		GeneratedBy:     actorUUID,
		GeneratedAt:     now,
	}
	if existing != nil {
		slip.ID = existing.ID
		slip.CreatedAt = existing.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if existing != nil {
		err = qtx.Update(ctx, slip)
	} else {
		err = qtx.Create(ctx, slip)
	}
	if err != nil {
		return SalarySlipResponse{}, err
	}

	if s.outbox != nil {
		payload, err := json.Marshal(events.SalarySlipGeneratedEvent{
			EventType:    EventSalarySlipGenerated,
			SalarySlipID: slip.ID.String(),
			CompanyID:    companyID,
			EmployeeName: employeeName,
			SlipNumber:   slipNumber,
			PeriodStart:  src.start.Format(dateLayout),
			PeriodEnd:    src.end.Format(dateLayout),
			NetPayable:   slip.NetPayable,
			PayslipURL:   url,
			GeneratedBy:  actorID,
			OccurredAt:   now,
		})
		if err != nil {
			return SalarySlipResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: AggregateSalarySlip,
			AggregateID:   slip.ID.String(),
			EventType:     EventSalarySlipGenerated,
			Topic:         events.SalarySlipGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return SalarySlipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SalarySlipResponse{}, err
	}

	log.Info("salary slip generated",
		zap.String("salary_slip_id", slip.ID.String()),
		zap.String("company_id", companyID),
		zap.String("slip_number", slipNumber),
		zap.Bool("regenerated", existing != nil),
	)

	return mapToResponse(*slip), nil
}

func (s *service) Request(
	ctx context.Context,
	companyID, actorID string,
	req SalarySlipRequest,
) (SalarySlipRequestedResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return SalarySlipRequestedResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return SalarySlipRequestedResponse{}, payrollerrors.ErrInvalidActorID
	}
	if req.EmployeeID != "" {
		if _, err := uuid.Parse(req.EmployeeID); err != nil {
			return SalarySlipRequestedResponse{}, payrollerrors.ErrInvalidEmployeeID
		}
	}
	start, end, err := req.period()
	if err != nil {
		return SalarySlipRequestedResponse{}, err
	}
	if s.outbox == nil {
		return SalarySlipRequestedResponse{}, payrollerrors.ErrQueueUnavailable
	}

	name := strings.TrimSpace(req.EmployeeName)
	payload, err := json.Marshal(events.SalarySlipRequestedEvent{
		EventType:       EventSalarySlipRequested,
		CompanyID:       companyID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    name,
		StartDate:       start.Format(dateLayout),
		EndDate:         end.Format(dateLayout),
		IncentiveAmount: req.IncentiveAmount,
		RequestedBy:     actorID,
		OccurredAt:      s.now().UTC(),
	})
	if err != nil {
		return SalarySlipRequestedResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalarySlipRequestedResponse{}, err
	}
	defer tx.Rollback()

	requestID := uuid.New()
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            requestID.String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: AggregateSalarySlip,
		AggregateID:   requestID.String(),
		EventType:     EventSalarySlipRequested,
		Topic:         events.SalarySlipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return SalarySlipRequestedResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SalarySlipRequestedResponse{}, err
	}

	return SalarySlipRequestedResponse{
		RequestID:    requestID.String(),
		EmployeeName: name,
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		Status:       StatusQueued,
	}, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetSalarySlipsFilterRequest,
) ([]SalarySlipResponse, int64, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, 0, payrollerrors.ErrInvalidCompanyID
	}

	query := SalarySlipFilter{EmployeeName: filter.EmployeeName}
	if filter.PeriodFrom != "" {
		from, err := time.Parse(dateLayout, filter.PeriodFrom)
		if err != nil {
			return nil, 0, payrollerrors.ErrInvalidDateFormat
		}
		query.PeriodFrom = &from
	}
	if filter.PeriodTo != "" {
		to, err := time.Parse(dateLayout, filter.PeriodTo)
		if err != nil {
			return nil, 0, payrollerrors.ErrInvalidDateFormat
		}
		query.PeriodTo = &to
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query.Limit = pageSize
	query.Offset = (page - 1) * pageSize

	slips, total, err := s.repo.FindAllByCompany(ctx, companyID, query)
	if err != nil {
		return nil, 0, err
	}

	return mapToListResponse(slips), total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalarySlipResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return SalarySlipResponse{}, payrollerrors.ErrInvalidSalarySlipID
	}

	slip, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalarySlipResponse{}, err
	}

	return mapToResponse(*slip), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func mapToResponse(slip SalarySlip) SalarySlipResponse {
	resp := SalarySlipResponse{
		ID:              slip.ID.String(),
		CompanyID:       slip.CompanyID.String(),
		EmployeeUID:     slip.EmployeeUID,
		EmployeeName:    slip.EmployeeName,
		SlipNumber:      slip.SlipNumber,
		PeriodStart:     slip.PeriodStart.Format(dateLayout),
		PeriodEnd:       slip.PeriodEnd.Format(dateLayout),
		YearlyCTC:       slip.YearlyCTC.StringFixed(2),
		GrossSalary:     slip.GrossSalary,
		LeaveDeduction:  slip.LeaveDeduction,
		ProfessionalTax: slip.ProfessionalTax,
		ProvidentFund:   slip.ProvidentFund,
		TDS:             slip.TDS,
		TotalDeductions: slip.TotalDeductions,
		IncentiveAmount: slip.IncentiveAmount,
		NetPayable:      slip.NetPayable,
		AmountInWords:   slip.AmountInWords,
		FileName:        slip.FileName,
		PayslipURL:      slip.PayslipURL,
		GeneratedBy:     slip.GeneratedBy.String(),
		GeneratedAt:     slip.GeneratedAt.Format(time.RFC3339),
	}

	if slip.EmployeeID != nil {
		v := slip.EmployeeID.String()
		resp.EmployeeID = &v
	}

	return resp
}

func mapToListResponse(slips []SalarySlip) []SalarySlipResponse {
	resp := make([]SalarySlipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapToResponse(slip)
	}
	return resp
}
