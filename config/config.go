package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	AppEnv       string
	GRPCPort     string
	HTTPPort     string
	RateLimitRPS float64
	RateBurst    int
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

type KafkaConfig struct {
	Brokers            []string
	DeliveriesTopic    string
	NotificationsTopic string
	GroupID            string
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

type WorkerConfig struct {
	ContractExpiryInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GRPC_PORT", "8082")
	v.SetDefault("HTTP_PORT", "8083")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	v.SetDefault("LOGGER_LEVEL", "debug")
	v.SetDefault("LOGGER_ENCODING", "console")
	v.SetDefault("LOGGER_DISABLE_CALLER", false)
	v.SetDefault("LOGGER_DISABLE_STACKTRACE", true)

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5433")
	v.SetDefault("POSTGRES_USER", "omnipos")
	v.SetDefault("POSTGRES_PASSWORD", "omnipos")
	v.SetDefault("POSTGRES_DB", "omnipos_rental")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("POSTGRES_MAX_OPEN_CONNS", 10)
	v.SetDefault("POSTGRES_MAX_IDLE_CONNS", 5)
	v.SetDefault("POSTGRES_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("POSTGRES_CONN_MAX_IDLE_TIME", "1m")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_LOCK_TTL", "10s")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC_DELIVERIES", "supplier.deliveries")
	v.SetDefault("KAFKA_TOPIC_NOTIFICATIONS", "rental.notifications")
	v.SetDefault("KAFKA_GROUP_ID", "rental-service")

	v.SetDefault("ELASTICSEARCH_ADDRESSES", "")
	v.SetDefault("ELASTICSEARCH_USERNAME", "")
	v.SetDefault("ELASTICSEARCH_PASSWORD", "")

	v.SetDefault("CONTRACT_EXPIRY_INTERVAL", "1m")
}

// LoadEnv reads .env when present, then the process environment. Empty
// KAFKA_BROKERS or ELASTICSEARCH_ADDRESSES turn those integrations off.
func LoadEnv() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:       v.GetString("APP_ENV"),
			GRPCPort:     strings.TrimPrefix(v.GetString("GRPC_PORT"), ":"),
			HTTPPort:     strings.TrimPrefix(v.GetString("HTTP_PORT"), ":"),
			RateLimitRPS: v.GetFloat64("RATE_LIMIT_RPS"),
			RateBurst:    v.GetInt("RATE_LIMIT_BURST"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		Postgres: PostgresConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			SSLMode:         v.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    v.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("POSTGRES_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("POSTGRES_CONN_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			LockTTL:  v.GetDuration("REDIS_LOCK_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:            splitList(v.GetString("KAFKA_BROKERS")),
			DeliveriesTopic:    v.GetString("KAFKA_TOPIC_DELIVERIES"),
			NotificationsTopic: v.GetString("KAFKA_TOPIC_NOTIFICATIONS"),
			GroupID:            v.GetString("KAFKA_GROUP_ID"),
		},
		Elastic: ElasticsearchConfig{
			Addresses: splitList(v.GetString("ELASTICSEARCH_ADDRESSES")),
			Username:  v.GetString("ELASTICSEARCH_USERNAME"),
			Password:  v.GetString("ELASTICSEARCH_PASSWORD"),
		},
		Worker: WorkerConfig{
			ContractExpiryInterval: v.GetDuration("CONTRACT_EXPIRY_INTERVAL"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
