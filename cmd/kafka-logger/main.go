package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

// taskEvent mirrors the producer's payload on the task events topic.
type taskEvent struct {
	Action string    `json:"action"`
	TaskID int64     `json:"task_id"`
	At     time.Time `json:"at"`
}

func initConfig() {
	viper.SetEnvPrefix("TASKS")
	viper.AutomaticEnv()
}

func main() {
	initConfig()

	broker := viper.GetString("KAFKA_BROKER")
	topic := viper.GetString("KAFKA_TOPIC")
	logFile := viper.GetString("KAFKA_LOG_FILE")

	if broker == "" || topic == "" || logFile == "" {
		log.Fatal("TASKS_KAFKA_BROKER, TASKS_KAFKA_TOPIC or TASKS_KAFKA_LOG_FILE is not configured")
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	logger.Println("Task event logger started")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: "task-event-logger-group",
	})

	for {
		m, err := r.ReadMessage(context.Background())
		if err != nil {
			logger.Printf("error reading message: %v\n", err)
			continue
		}

		var ev taskEvent
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			logger.Printf("skipping malformed event: %v\n", err)
			continue
		}

		logger.Printf("[%s] %s task=%d\n", ev.At.Format(time.RFC3339), ev.Action, ev.TaskID)
	}
}
