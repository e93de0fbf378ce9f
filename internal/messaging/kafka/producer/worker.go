package producer

import (
	"context"
	"time"

	"go-payslip/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	purgeInterval       = time.Hour
	DefaultBatchSize    = 50
)

func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
	retention time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	log.Info("outbox worker started",
		zap.Duration("poll_interval", pollInterval),
		zap.Duration("retention", retention),
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := PublishPending(ctx, repo, writer, log, DefaultBatchSize); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		case <-purge.C:
			if _, err := PurgeSent(ctx, repo, log, retention, time.Now()); err != nil {
				log.Error("purge outbox events failed", zap.Error(err))
			}
		}
	}
}

// PublishPending relays one batch of pending outbox rows and returns how
// many were marked sent. A failed publish marks the row failed and moves on.
func PublishPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer Writer,
	logger *zap.Logger,
	batchSize int,
) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		logger.Debug("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("request_id", event.RequestID),
		)
	}

	return sent, nil
}

// PurgeSent removes sent rows older than retention. A non-positive
// retention keeps every row.
func PurgeSent(
	ctx context.Context,
	repo kafka.OutboxRepository,
	logger *zap.Logger,
	retention time.Duration,
	now time.Time,
) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}

	n, err := repo.PurgeSent(ctx, now.Add(-retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", n))
	}
	return n, nil
}
