package orders

import (
	"context"
	"errors"

	"fleet-scheduler/internal/apperr"
	"fleet-scheduler/internal/logx"
)

// Processor turns order-intake events into unassigned-order changes.
type Processor struct {
	schedule SchedulePort
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor.
func NewProcessor(schedule SchedulePort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		schedule: schedule,
		logger:   logger.With(logx.String("component", "orders")),
	}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single event. Unknown types are ignored. Redelivered
// events are no-ops. Errors wrapping apperr.ErrInvalid will never succeed on
// retry.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("order event ignored",
			logx.String("type", e.Type),
			logx.String("order_ref", e.OrderRef),
		)
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	o, err := p.schedule.AddOrder(ctx, e.Order())
	switch {
	case errors.Is(err, apperr.ErrConflict):
		p.logger.Info("order already known",
			logx.String("order_ref", e.OrderRef),
		)
		return nil
	case err != nil:
		return err
	}
	p.logger.Info("order queued",
		logx.String("order_ref", o.OrderRef),
		logx.String("order_id", o.ID),
	)
	return nil
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	_, err := p.schedule.WithdrawOrder(ctx, e.OrderRef)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return nil
	case errors.Is(err, apperr.ErrConflict):
		// already on a vehicle; a dispatcher has to remove it by hand
		p.logger.Warn("canceled order is scheduled",
			logx.String("order_ref", e.OrderRef),
			logx.Err(err),
		)
		return nil
	case err != nil:
		return err
	}
	p.logger.Info("order withdrawn", logx.String("order_ref", e.OrderRef))
	return nil
}
