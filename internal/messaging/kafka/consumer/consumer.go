package consumer

import (
	"context"
	"errors"

	"go-payslip/internal/messaging/kafka/producer"
	payrollerrors "go-payslip/internal/payroll/errors"
	"go-payslip/internal/shared/apperror"
	"go-payslip/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the part of *kafkago.Reader the consumers need.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// messageContext carries the producing request's id and a logger tagged
// with it, so API and consumer log lines for one slip correlate.
func messageContext(ctx context.Context, msg kafkago.Message, log *zap.Logger) context.Context {
	for _, h := range msg.Headers {
		if h.Key == producer.HeaderRequestID && len(h.Value) > 0 {
			requestID := string(h.Value)
			ctx = contextutil.WithRequestID(ctx, requestID)
			log = log.With(zap.String("request_id", requestID))
			break
		}
	}
	return contextutil.WithLogger(ctx, log)
}

// isPermanent reports whether redelivering the message cannot change the
// outcome, so it should be committed and skipped. A held generation lock
// is released once the competing run finishes.
func isPermanent(err error) bool {
	if errors.Is(err, payrollerrors.ErrGenerationInProgress) {
		return false
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case apperror.CodeInvalidInput, apperror.CodeNotFound, apperror.CodeConflict:
		return true
	}
	return false
}
