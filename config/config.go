package config

import "time"

type Config struct {
	AppName                       string `env:"APP_NAME" env-default:"fern-api"`
	Port                          int    `env:"PORT" env-default:"3000"`
	LogLevel                      string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool   `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int    `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int    `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int    `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int    `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB

	// Outbound HTTP client settings
	// Hard ceiling on outbound request duration regardless of spec timeout
	HTTPClientMaxTimeout time.Duration `env:"HTTP_CLIENT_MAX_TIMEOUT" env-default:"30s"`
	// Max idle connections kept in the outbound pool
	HTTPClientMaxIdleConns int `env:"HTTP_CLIENT_MAX_IDLE_CONNS" env-default:"100"`

	// Resolution cache settings
	// Cache backend: "memory" or "redis"
	CacheBackend string `env:"CACHE_BACKEND" env-default:"memory"`
	// Max entries held by the in-memory cache
	CacheMaxSize int `env:"CACHE_MAX_SIZE" env-default:"1000"`

	// Redis host
	RedisHost string `env:"REDIS_HOST" env-default:"localhost"`
	// Redis port
	RedisPort int `env:"REDIS_PORT" env-default:"6379"`
	// Redis password
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	// Redis database number
	RedisDB int `env:"REDIS_DB" env-default:"0"`

	// Whether to emit resolution events to Kafka
	EventsEnabled bool `env:"EVENTS_ENABLED" env-default:"false"`
	// Kafka brokers (comma-separated)
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	// Kafka topic for resolution events
	KafkaEventsTopic string `env:"KAFKA_EVENTS_TOPIC" env-default:"resolution-events"`

	// Whether to export traces
	TracingEnabled bool `env:"TRACING_ENABLED" env-default:"false"`
	// OTLP/HTTP collector endpoint
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:"localhost:4318"`
	// Disable TLS to the collector (local development)
	OTLPInsecure bool `env:"OTLP_INSECURE" env-default:"true"`
}
