// Package config loads config.yaml with environment overrides.
package config

import (
	"strings"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
)

const defaultMaxRequestBodySize = "4MB"

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Serial configures the serial number allocator
	Serial *SerialConfig `json:"serial" yaml:"serial"`

	// QRCode configuration for warranty verification codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Storage configures where generated artifacts and logos are kept
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// PubSub configuration for audit event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Sentry *SentryConfig `json:"sentry" yaml:"sentry"`

	// Worker configures the audit push worker
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int           `json:"bcryptCost" yaml:"bcryptCost"`
	TokenTTL   time.Duration `json:"tokenTTL" yaml:"tokenTTL"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SerialConfig bounds serial generation.
type SerialConfig struct {
	// Number of random characters between prefix and suffix
	BodyLength int `json:"bodyLength" yaml:"bodyLength"`

	// Generation attempts before giving up on a candidate (or a chunk top-up)
	MaxRetries int `json:"maxRetries" yaml:"maxRetries"`

	// Candidates checked against storage per round trip
	ChunkSize int `json:"chunkSize" yaml:"chunkSize"`

	// Largest batch quantity accepted
	MaxBatchQuantity int `json:"maxBatchQuantity" yaml:"maxBatchQuantity"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// StorageConfig defines the artifact bucket.
type StorageConfig struct {
	// gocloud.dev bucket URL, e.g. mem://, file:///var/lib/warranty, s3://bucket?region=ap-south-1
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// Public prefix prepended to object keys when building artifact URLs
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for audit event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP, "google" for Google Pub/Sub, empty writes audit entries directly
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN              string  `json:"dsn" yaml:"dsn"`
	Environment      string  `json:"environment" yaml:"environment"`
	TracesSampleRate float64 `json:"tracesSampleRate" yaml:"tracesSampleRate"`
}

// WorkerConfig defines the audit push worker.
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`

	// Verify the OIDC token Google attaches to push requests
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`

	// Expected audience of the push OIDC token
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`

	// Service account allowed to push, empty accepts any verified sender
	PushServiceAccount string `json:"pushServiceAccount" yaml:"pushServiceAccount"`
}

// New loads config.yaml from the working directory or a parent config
// directory, then applies POSTGRES_REPLICAS_n_* and request body defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = replicasFromEnv()
	}

	return cfg, nil
}
