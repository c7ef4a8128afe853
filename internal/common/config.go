package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Cache        CacheConfig
	Collaborator CollaboratorConfig
	Google       GoogleConfig
	Local        LocalConfig
	Server       ServerConfig
	Tuning       TuningConfig
}

// CacheConfig selects and configures the result cache backend
type CacheConfig struct {
	Backend    string // fs | memory | sqlite | postgres | s3
	Dir        string
	KeyScheme  string // digest | size
	SQLitePath string
	Postgres   DatabaseConfig
	S3         S3Config
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// S3Config holds object storage configuration
type S3Config struct {
	Bucket    string
	Region    string
	Prefix    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// CollaboratorConfig holds the resilience settings around OCR and labelling calls
type CollaboratorConfig struct {
	Provider      string // google | local
	Timeout       time.Duration
	MaxRetries    int
	BaseBackoff   time.Duration
	RatePerSecond float64
	Burst         int
}

// GoogleConfig holds Document AI and Vision settings
type GoogleConfig struct {
	ProjectID       string
	Location        string
	ProcessorID     string
	CredentialsFile string
	APIKey          string
}

// LocalConfig holds the command-line tools used by the local provider
type LocalConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Pdfimages     string
	Tesseract     string
	TesseractLang string
	TessdataDir   string
	DPI           int
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr       string
	MaxUploadBytes int64
}

// TuningConfig holds the extraction knobs that can be overridden from a TOML file
type TuningConfig struct {
	VATWindow      int     `toml:"vat_window"`
	PolicyWindow   int     `toml:"policy_window"`
	DateWindow     int     `toml:"date_window"`
	PriceWindow    int     `toml:"price_window"`
	LabelThreshold float64 `toml:"label_threshold"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:    getEnv("CACHE_BACKEND", "fs"),
			Dir:        getEnv("CACHE_DIR", "./tmp"),
			KeyScheme:  getEnv("CACHE_KEY_SCHEME", "digest"),
			SQLitePath: getEnv("CACHE_SQLITE_PATH", "./tmp/cache.db"),
			Postgres: DatabaseConfig{
				DSN:             getEnv("DB_URL", ""),
				MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
				MinConns:        getEnvAsInt32("DB_MIN_CONNS", 1),
				MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
				MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
				DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			},
			S3: S3Config{
				Bucket:    getEnv("S3_BUCKET", ""),
				Region:    getEnv("AWS_REGION", "eu-south-1"),
				Prefix:    getEnv("S3_PREFIX", "claims-cache"),
				AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
			},
		},
		Collaborator: CollaboratorConfig{
			Provider:      getEnv("COLLAB_PROVIDER", "google"),
			Timeout:       getEnvAsDuration("COLLAB_TIMEOUT", 60*time.Second),
			MaxRetries:    getEnvAsInt("COLLAB_MAX_RETRIES", 3),
			BaseBackoff:   getEnvAsDuration("COLLAB_BASE_BACKOFF", 500*time.Millisecond),
			RatePerSecond: getEnvAsFloat64("COLLAB_RATE_PER_SECOND", 5),
			Burst:         getEnvAsInt("COLLAB_BURST", 5),
		},
		Google: GoogleConfig{
			ProjectID:       getEnv("GOOGLE_PROJECT_ID", ""),
			Location:        getEnv("DOCAI_LOCATION", "eu"),
			ProcessorID:     getEnv("DOCAI_PROCESSOR_ID", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			APIKey:          getEnv("GOOGLE_API_KEY", ""),
		},
		Local: LocalConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Pdfimages:     getEnv("PDFIMAGES_BIN", "pdfimages"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "ita"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
		},
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 32<<20)),
		},
		Tuning: DefaultTuning(),
	}
}

// DefaultTuning returns the stock context windows and label threshold.
func DefaultTuning() TuningConfig {
	return TuningConfig{
		VATWindow:      10,
		PolicyWindow:   15,
		DateWindow:     20,
		PriceWindow:    30,
		LabelThreshold: 0.7,
	}
}

// LoadTuningFile overlays values found in a TOML file onto the current tuning.
// Keys missing from the file keep their current value.
func (c *Config) LoadTuningFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapError(err, "read tuning file")
	}
	if err := toml.Unmarshal(data, &c.Tuning); err != nil {
		return NewAppError(CodeConfig, fmt.Sprintf("parse tuning file %s", path), err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("CACHE_BACKEND", c.Cache.Backend, OneOf("fs", "memory", "sqlite", "postgres", "s3")).
		Field("CACHE_KEY_SCHEME", c.Cache.KeyScheme, OneOf("digest", "size")).
		Field("COLLAB_PROVIDER", c.Collaborator.Provider, OneOf("google", "local")).
		Field("HTTP_ADDR", c.Server.HTTPAddr, Required)
	if v.HasErrors() {
		return NewAppError(CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}

	switch c.Cache.Backend {
	case "postgres":
		if c.Cache.Postgres.DSN == "" {
			return NewAppError(CodeConfig, "DB_URL is required for the postgres cache", ErrInvalidInput)
		}
	case "s3":
		if c.Cache.S3.Bucket == "" {
			return NewAppError(CodeConfig, "S3_BUCKET is required for the s3 cache", ErrInvalidInput)
		}
	}
	if c.Collaborator.Provider == "google" && (c.Google.ProjectID == "" || c.Google.ProcessorID == "") {
		return NewAppError(CodeConfig, "GOOGLE_PROJECT_ID and DOCAI_PROCESSOR_ID are required", ErrInvalidInput)
	}
	t := c.Tuning
	if t.VATWindow <= 0 || t.PolicyWindow <= 0 || t.DateWindow <= 0 || t.PriceWindow <= 0 {
		return NewAppError(CodeConfig, "tuning windows must be positive", ErrInvalidInput)
	}
	if t.LabelThreshold < 0 || t.LabelThreshold >= 1 {
		return NewAppError(CodeConfig, "label_threshold must be in [0,1)", ErrInvalidInput)
	}
	return nil
}
