package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishCall struct {
	key   string
	value []byte
}

type fakePublisher struct {
	calls []publishCall
	err   error
}

func (p *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	p.calls = append(p.calls, publishCall{key: key, value: value})
	return p.err
}

func TestKafkaSender_Send(t *testing.T) {
	pub := &fakePublisher{}
	s := NewKafkaSender(pub, logger.NewNop())

	err := s.Send(context.Background(), Event{
		Type:     ContractStatusChanged,
		EntityID: "c-1",
		Payload:  map[string]interface{}{"from": "paid", "to": "active"},
	})
	require.NoError(t, err)
	require.Len(t, pub.calls, 1)
	assert.Equal(t, "c-1", pub.calls[0].key)

	var got Event
	require.NoError(t, json.Unmarshal(pub.calls[0].value, &got))
	assert.Equal(t, ContractStatusChanged, got.Type)
	assert.Equal(t, "active", got.Payload["to"])
	assert.False(t, got.OccurredAt.IsZero())
}

func TestKafkaSender_OpensAfterConsecutiveFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	s := NewKafkaSender(pub, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Error(t, s.Send(ctx, Event{Type: SupplierOrderCreated, EntityID: "so-1"}))
	}

	err := s.Send(ctx, Event{Type: SupplierOrderCreated, EntityID: "so-1"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, pub.calls, 3)
}

func TestNopSender(t *testing.T) {
	assert.NoError(t, NopSender{}.Send(context.Background(), Event{Type: ContractStatusChanged}))
	assert.NoError(t, NopSender{Logger: logger.NewNop()}.Send(context.Background(), Event{Type: ContractStatusChanged}))
}
