package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the risk service.
type Config struct {
	GRPCPort         string
	HTTPPort         string
	KafkaTopic       string
	Environment      string
	LogLevel         string
	LogFormat        string
	JWTSecret        string
	JWTIssuer        string
	ThresholdsFile   string
	TLSCertFile      string
	TLSKeyFile       string
	JWTPublicKeyFile string
	OTLPEndpoint     string
	// KafkaIntakeTopic enables the comparison intake consumer when set.
	KafkaIntakeTopic   string
	KafkaConsumerGroup string
	KafkaSASLMechanism string
	KafkaSASLUsername  string
	KafkaSASLPassword  string
	KafkaBrokers       []string
	TraceSampleRatio   float64
	// RateLimitRPS caps HTTP requests per second; 0 disables limiting.
	RateLimitRPS     int
	BatchConcurrency int
	GRPCReflection   bool
	KafkaTLS         bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	concurrency, err := strconv.Atoi(getEnv("BATCH_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid BATCH_CONCURRENCY: %w", err)
	}
	reflection, err := strconv.ParseBool(getEnv("GRPC_REFLECTION", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRPC_REFLECTION: %w", err)
	}
	kafkaTLS, err := strconv.ParseBool(getEnv("KAFKA_TLS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid KAFKA_TLS: %w", err)
	}
	rps, err := strconv.Atoi(getEnv("RATE_LIMIT_RPS", "100"))
	if err != nil || rps < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS %q: must be a non-negative integer", getEnv("RATE_LIMIT_RPS", "100"))
	}
	sampleRatio, err := strconv.ParseFloat(getEnv("OTEL_TRACES_SAMPLER_ARG", "1"), 64)
	if err != nil || sampleRatio < 0 || sampleRatio > 1 {
		return nil, fmt.Errorf("invalid OTEL_TRACES_SAMPLER_ARG %q: must be a ratio within [0,1]", getEnv("OTEL_TRACES_SAMPLER_ARG", "1"))
	}

	return &Config{
		GRPCPort:           getEnv("GRPC_PORT", "8090"),
		HTTPPort:           getEnv("HTTP_PORT", "9090"),
		KafkaBrokers:       splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "risk.events"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "supplement-guard"),
		ThresholdsFile:     getEnv("THRESHOLDS_FILE", ""),
		TLSCertFile:        getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:         getEnv("TLS_KEY_FILE", ""),
		JWTPublicKeyFile:   getEnv("JWT_PUBLIC_KEY_FILE", ""),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceSampleRatio:   sampleRatio,
		RateLimitRPS:       rps,
		KafkaIntakeTopic:   getEnv("KAFKA_INTAKE_TOPIC", ""),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "supplement-guard-risk"),
		KafkaSASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
		KafkaSASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
		KafkaSASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		KafkaTLS:           kafkaTLS,
		BatchConcurrency:   concurrency,
		GRPCReflection:     reflection,
	}, nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// KafkaEnabled reports whether any broker is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// AuthEnabled reports whether JWT authentication is configured.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" || c.JWTPublicKeyFile != ""
}

// IntakeEnabled reports whether comparisons should be consumed from Kafka.
func (c *Config) IntakeEnabled() bool {
	return c.KafkaEnabled() && c.KafkaIntakeTopic != ""
}

// TracingEnabled reports whether an OTLP collector is configured.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// TLSEnabled reports whether both listener certificate files are set.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
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
