package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-payslip/internal/events"
	"go-payslip/internal/payroll"
	payrollerrors "go-payslip/internal/payroll/errors"

	"go.uber.org/zap"
)

// BusyRetries bounds how often one message is retried while another run
// holds the generation lock for the same slip.
const BusyRetries = 5

var BusyRetryDelay = 2 * time.Second

func ConsumeSalarySlipRequested(
	ctx context.Context,
	reader Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_slip")
	log.Info("salary slip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary slip consumer stopped")
				return
			}
			log.Error("fetch salary slip message failed", zap.Error(err))
			continue
		}

		var event events.SalarySlipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary slip event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := messageContext(ctx, msg, log)
		resp, err := generateWhenFree(msgCtx, payrollService, event, log)
		if err != nil {
			if isPermanent(err) {
				log.Warn("salary slip request rejected, skipping",
					zap.String("company_id", event.CompanyID),
					zap.String("employee_name", event.EmployeeName),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("generate salary slip failed",
				zap.String("company_id", event.CompanyID),
				zap.String("employee_name", event.EmployeeName),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary slip message failed", zap.Error(err))
			continue
		}

		log.Info("salary slip generated from request",
			zap.String("salary_slip_id", resp.ID),
			zap.String("slip_number", resp.SlipNumber),
			zap.String("company_id", event.CompanyID),
		)
	}
}

// generateWhenFree runs Generate, waiting out a generation lock held by a
// concurrent download or generate for the same slip.
func generateWhenFree(
	ctx context.Context,
	payrollService payroll.Service,
	event events.SalarySlipRequestedEvent,
	log *zap.Logger,
) (payroll.SalarySlipResponse, error) {
	req := payroll.SalarySlipRequest{
		EmployeeName:    event.EmployeeName,
		EmployeeID:      event.EmployeeID,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		IncentiveAmount: event.IncentiveAmount,
	}

	for attempt := 1; ; attempt++ {
		resp, err := payrollService.Generate(ctx, event.CompanyID, event.RequestedBy, req)
		if err == nil || !errors.Is(err, payrollerrors.ErrGenerationInProgress) || attempt > BusyRetries {
			return resp, err
		}

		log.Info("salary slip generation busy, retrying",
			zap.String("company_id", event.CompanyID),
			zap.String("employee_name", event.EmployeeName),
			zap.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return payroll.SalarySlipResponse{}, ctx.Err()
		case <-time.After(BusyRetryDelay):
		}
	}
}
