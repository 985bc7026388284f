package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Actions emitted on successful task mutations.
const (
	ActionCreated = "task.created"
	ActionUpdated = "task.updated"
	ActionDeleted = "task.deleted"
)

// Event is the JSON payload written to the task events topic.
type Event struct {
	Action string    `json:"action"`
	TaskID int64     `json:"task_id"`
	At     time.Time `json:"at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// TaskEvent publishes one event. Failures are logged and swallowed so the
// event trail never fails a request.
func (p *Producer) TaskEvent(action string, taskID int64) {
	now := time.Now().UTC()

	value, err := json.Marshal(Event{Action: action, TaskID: taskID, At: now})
	if err != nil {
		log.Println("failed to marshal kafka event:", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(now.Format(time.RFC3339Nano)),
		Value: value,
		Time:  now,
	}

	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		log.Println("failed to write kafka message:", err)
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
