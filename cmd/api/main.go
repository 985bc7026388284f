package main

import (
	"log"
	"strings"

	"github.com/kalpovskii/taskmanager/internal/app/repositories"
	"github.com/kalpovskii/taskmanager/internal/app/services"
	"github.com/kalpovskii/taskmanager/internal/kafka"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// config holds everything the process reads from the environment, resolved
// once at startup.
type config struct {
	Port        string
	APIKey      string
	PostgresDSN string
	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string
}

func initConfig() config {
	viper.SetEnvPrefix("TASKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("API_PORT", "8080")

	return config{
		Port:        viper.GetString("API_PORT"),
		APIKey:      viper.GetString("API_KEY"),
		PostgresDSN: viper.GetString("POSTGRES_DSN"),
		RedisAddr:   viper.GetString("REDIS_ADDR"),
		KafkaBroker: viper.GetString("KAFKA_BROKER"),
		KafkaTopic:  viper.GetString("KAFKA_TOPIC"),
	}
}

func main() {
	cfg := initConfig()

	if cfg.PostgresDSN == "" || cfg.APIKey == "" {
		log.Fatal("TASKS_POSTGRES_DSN or TASKS_API_KEY is not configured")
	}

	repo, err := repositories.NewPostgresTaskRepo(cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}

	var cache repositories.TaskCache = repositories.NopTaskCache{}
	if cfg.RedisAddr != "" {
		cache = repositories.NewRedisTaskRepository(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Printf("Task cache enabled at %s", cfg.RedisAddr)
	}

	var events services.EventProducer
	if cfg.KafkaBroker != "" && cfg.KafkaTopic != "" {
		producer := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
		defer producer.Close()
		events = producer
		log.Printf("Task events enabled on topic %s", cfg.KafkaTopic)
	}

	service := services.NewTaskService(repo, cache, events)

	r := setupRouter(service, cfg.APIKey)

	log.Printf("Task Manager API started on :%s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
