package app

import (
	"context"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/service/orders"
	"fleet-scheduler/internal/service/scheduling"
	"fleet-scheduler/internal/transport/kafka"
)

// kafkaConsumerFactory matches kafka.NewConsumer so tests can swap it.
type kafkaConsumerFactory func(logx.Logger, []string, string, string, kafka.HandleFunc) (*kafka.Consumer, error)

func newOrdersProcessor(svc *scheduling.Service, logger logx.Logger) *orders.Processor {
	return orders.NewProcessor(svc, logger)
}

func makeOrdersKafka(p *orders.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		return p.Handle(ctx, event)
	}
}

func (f kafkaConsumerFactory) newOrdersConsumer(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
	if !cfg.Kafka.Enabled() {
		logger.Info("kafka intake disabled")
		return nil, nil
	}
	return f(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeOrdersKafka(p))
}
