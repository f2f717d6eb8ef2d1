package broker

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewProducer_FlushesPromptly(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"localhost:9092"}, Topic: "rental.notifications"})
	defer p.Close()

	assert.Equal(t, 10*time.Millisecond, p.writer.BatchTimeout)
	assert.Equal(t, "rental.notifications", p.writer.Topic)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

func TestNewConsumer_UsesGroup(t *testing.T) {
	c := NewConsumer(&Config{Brokers: []string{"localhost:9092"}, Topic: "deliveries", GroupID: "rental"})
	defer c.Close()

	cfg := c.reader.Config()
	assert.Equal(t, "rental", cfg.GroupID)
	assert.Equal(t, "deliveries", cfg.Topic)
}
