package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Publisher is satisfied by *broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

type KafkaSender struct {
	publisher Publisher
	breaker   *gobreaker.CircuitBreaker
	logger    logger.ZapLogger
}

func NewKafkaSender(publisher Publisher, log logger.ZapLogger) *KafkaSender {
	st := gobreaker.Settings{Name: "notifications"}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	}

	return &KafkaSender{
		publisher: publisher,
		breaker:   gobreaker.NewCircuitBreaker(st),
		logger:    log,
	}
}

// Send publishes the event keyed by entity id, so all events of one contract
// land on the same partition in order.
func (s *KafkaSender) Send(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.Type, err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return nil, s.publisher.Publish(ctx, event.EntityID, value)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// NopSender only logs. Used when no broker is configured.
type NopSender struct {
	Logger logger.ZapLogger
}

func (s NopSender) Send(_ context.Context, event Event) error {
	if s.Logger != nil {
		s.Logger.Debug("notification dropped",
			zap.String("type", string(event.Type)),
			zap.String("entity_id", event.EntityID))
	}
	return nil
}
