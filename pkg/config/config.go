package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration. It is loaded once at startup and
// injected; nothing reads the environment after Load returns.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Storage       StorageConfig
	Completion    CompletionConfig
	Transcription TranscriptionConfig
	Pipeline      PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"voicepost"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds MinIO object storage configuration for voice memos
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"voicepost-memos"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// CompletionConfig configures the completion capability. Any
// OpenAI-compatible endpoint works; the core is vendor-agnostic.
type CompletionConfig struct {
	APIKey          string  `envconfig:"COMPLETION_API_KEY"`
	BaseURL         string  `envconfig:"COMPLETION_BASE_URL" default:""`
	Model           string  `envconfig:"COMPLETION_MODEL" default:"llama-3.1-70b-versatile"`
	ClassifierModel string  `envconfig:"CLASSIFIER_MODEL" default:"llama-3.1-8b-instant"`
	Temperature     float32 `envconfig:"COMPLETION_TEMPERATURE" default:"0.7"`
	TimeoutSeconds  int     `envconfig:"COMPLETION_TIMEOUT_SECONDS" default:"60"`
}

// TranscriptionConfig configures AssemblyAI voice memo transcription
type TranscriptionConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY"`
}

// PipelineConfig holds tunables of the generation pipeline
type PipelineConfig struct {
	// Transcripts shorter than this bypass classification entirely
	ShortTranscriptThreshold int `envconfig:"SHORT_TRANSCRIPT_THRESHOLD" default:"200"`
	// Cap on the aggregated style block before prompt concatenation
	StyleMaxTokens int `envconfig:"STYLE_MAX_TOKENS" default:"500"`
	// Per-segment generation timeout during fan-out
	GenerationTimeoutSeconds int `envconfig:"GENERATION_TIMEOUT_SECONDS" default:"90"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Completion.APIKey == "" {
		return fmt.Errorf("COMPLETION_API_KEY is required")
	}
	if c.Pipeline.ShortTranscriptThreshold <= 0 {
		return fmt.Errorf("SHORT_TRANSCRIPT_THRESHOLD must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Timeout returns the per-call completion deadline as a duration
func (c *CompletionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GenerationTimeout returns the per-segment fan-out deadline as a duration
func (p *PipelineConfig) GenerationTimeout() time.Duration {
	return time.Duration(p.GenerationTimeoutSeconds) * time.Second
}
