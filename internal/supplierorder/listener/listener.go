package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/middleware"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const deliveredEvent = "SupplierOrderDelivered"

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type DeliveryListener struct {
	consumer MessageReader
	uc       supplierorder.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewDeliveryListener(consumer MessageReader, uc supplierorder.UseCase, logger logger.ZapLogger) *DeliveryListener {
	return &DeliveryListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

// Start blocks until ctx is canceled.
func (l *DeliveryListener) Start(ctx context.Context) {
	l.logger.Info("Starting supplier delivery listener")
	for {
		msg, err := l.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping supplier delivery listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.backoff):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

type DeliveredEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   DeliveredPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type DeliveredPayload struct {
	SupplierOrderID string `json:"supplier_order_id"`
}

func (l *DeliveryListener) processMessage(ctx context.Context, value []byte) {
	var event DeliveredEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if event.EventType != deliveredEvent {
		return
	}

	id := event.Payload.SupplierOrderID
	l.logger.Info("Processing SupplierOrderDelivered event", zap.String("supplier_order_id", id))

	ctx = context.WithValue(ctx, middleware.UserIDKey, auth.SystemUser)
	if _, err := l.uc.ReceiveSupplierOrder(ctx, id); err != nil {
		// Redelivered events hit an already received order.
		if apperr.KindOf(err) == apperr.KindIllegalTransition {
			l.logger.Debug("Delivery already processed", zap.String("supplier_order_id", id))
			return
		}
		l.logger.Error("Failed to receive supplier order",
			zap.String("supplier_order_id", id),
			zap.Error(err),
		)
	}
}
