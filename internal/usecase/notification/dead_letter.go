package notification

import (
	"context"
	"log/slog"

	"payment-gateway/internal/domain/event"
	sqlc "payment-gateway/internal/infra/sqlc/generated"
	"payment-gateway/internal/pkg/clock"
	"payment-gateway/internal/pkg/errs"
	"payment-gateway/internal/usecase/shared"
)

var ErrDeadLetterPersist = errs.New("failed to persist dead letter")

// DeadLetterHandler is the terminal sink: it stores the message and raises an
// alert. It never publishes anywhere.
type DeadLetterHandler struct {
	uow    shared.UnitOfWork
	repo   shared.DeadLetterRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewDeadLetterHandler(uow shared.UnitOfWork, repo shared.DeadLetterRepository, clock clock.Clock, logger *slog.Logger) *DeadLetterHandler {
	return &DeadLetterHandler{
		uow:    uow,
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

func (h *DeadLetterHandler) Handle(ctx context.Context, msg shared.Message) error {
	rec := shared.DeadLetterRecord{
		Topic:         msg.Topic,
		Partition:     msg.Partition,
		Offset:        msg.Offset,
		OriginalTopic: originalTopic(msg),
		Key:           string(msg.Key),
		Payload:       msg.Value,
		ErrorMessage:  msg.Header(event.HeaderLastError),
		ReceivedAt:    h.clock.Now(),
	}

	var saved bool
	err := h.uow.WithDB(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		var err error
		saved, err = h.repo.Save(ctx, db, rec)
		return err
	})
	if err != nil {
		return errs.Mark(err, ErrDeadLetterPersist)
	}

	if !saved {
		h.logger.Debug("dead letter already recorded",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset)
		return nil
	}

	h.logger.Error("ALERT: payment event dead-lettered",
		"topic", msg.Topic,
		"original_topic", rec.OriginalTopic,
		"transaction_id", rec.Key,
		"attempt", DeliveryAttempt(msg),
		"error", rec.ErrorMessage)
	return nil
}
