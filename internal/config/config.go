package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"copilot/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	GCP         GCPConfig
	Model       ModelConfig
	Upload      UploadConfig
	Session     SessionConfig
	RecordStore RecordStoreConfig
	Storage     StorageConfig
	Jira        JiraConfig
	CORS        CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GCPConfig holds the Google Cloud bindings every hosted service call needs.
type GCPConfig struct {
	ProjectID        string `mapstructure:"project_id"`
	Region           string `mapstructure:"region"`
	DocAILocation    string `mapstructure:"docai_location"`
	DocAIProcessorID string `mapstructure:"docai_processor_id"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
}

// Env names of the required GCP bindings.
const (
	EnvProjectID   = "GCP_PROJECT_ID"
	EnvRegion      = "GCP_REGION"
	EnvProcessorID = "DOCAI_PROCESSOR_ID"
)

// Missing returns the env names of the required bindings that are empty, in
// the order project id, region, processor id.
func (g *GCPConfig) Missing() []string {
	var missing []string
	if strings.TrimSpace(g.ProjectID) == "" {
		missing = append(missing, EnvProjectID)
	}
	if strings.TrimSpace(g.Region) == "" {
		missing = append(missing, EnvRegion)
	}
	if strings.TrimSpace(g.DocAIProcessorID) == "" {
		missing = append(missing, EnvProcessorID)
	}
	return missing
}

// RequireBindings returns a *domain.ConfigurationError listing every missing
// required binding, or nil when all are set.
func (g *GCPConfig) RequireBindings() error {
	if missing := g.Missing(); len(missing) > 0 {
		return &domain.ConfigurationError{Missing: missing}
	}
	return nil
}

// ModelConfig holds generative model gateway settings.
type ModelConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	ChatMaxChars int    `mapstructure:"chat_max_chars"`
	ChatCutChars int    `mapstructure:"chat_cut_chars"`
}

// UploadConfig holds requirement document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	// MinTextChars is the shortest extracted text worth sending to the model.
	MinTextChars int `mapstructure:"min_text_chars"`
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// SessionConfig holds per-session state storage settings.
type SessionConfig struct {
	Store    string        `mapstructure:"store"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// RecordStoreConfig holds history record store settings.
type RecordStoreConfig struct {
	Provider   string   `mapstructure:"provider"`
	DB         DBConfig `mapstructure:"db"`
	SQLitePath string   `mapstructure:"sqlite_path"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig holds S3 export archive settings.
type StorageConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// JiraConfig holds issue tracker export settings.
type JiraConfig struct {
	DefaultIssueType string `mapstructure:"default_issue_type"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// envBindings maps config keys to their environment variables. The GCP keys
// additionally accept the bare names below.
var envBindings = map[string]string{
	"server.port":              "COPILOT_SERVER_PORT",
	"server.read_timeout":      "COPILOT_SERVER_READ_TIMEOUT",
	"server.write_timeout":     "COPILOT_SERVER_WRITE_TIMEOUT",
	"server.environment":       "COPILOT_SERVER_ENVIRONMENT",
	"log.level":                "COPILOT_LOG_LEVEL",
	"log.format":               "COPILOT_LOG_FORMAT",
	"gcp.project_id":           "COPILOT_GCP_PROJECT_ID",
	"gcp.region":               "COPILOT_GCP_REGION",
	"gcp.docai_location":       "COPILOT_GCP_DOCAI_LOCATION",
	"gcp.docai_processor_id":   "COPILOT_GCP_DOCAI_PROCESSOR_ID",
	"gcp.timeout_secs":         "COPILOT_GCP_TIMEOUT_SECS",
	"model.provider":           "COPILOT_MODEL_PROVIDER",
	"model.api_key":            "COPILOT_MODEL_API_KEY",
	"model.default_model":      "COPILOT_MODEL_DEFAULT_MODEL",
	"model.timeout_secs":       "COPILOT_MODEL_TIMEOUT_SECS",
	"model.chat_max_chars":     "COPILOT_MODEL_CHAT_MAX_CHARS",
	"model.chat_cut_chars":     "COPILOT_MODEL_CHAT_CUT_CHARS",
	"upload.max_file_size_mb":  "COPILOT_UPLOAD_MAX_FILE_SIZE_MB",
	"upload.min_text_chars":    "COPILOT_UPLOAD_MIN_TEXT_CHARS",
	"session.store":            "COPILOT_SESSION_STORE",
	"session.ttl":              "COPILOT_SESSION_TTL",
	"session.redis_url":        "COPILOT_SESSION_REDIS_URL",
	"record_store.provider":    "COPILOT_RECORD_STORE_PROVIDER",
	"record_store.sqlite_path": "COPILOT_RECORD_STORE_SQLITE_PATH",
	"record_store.db.host":     "COPILOT_RECORD_STORE_DB_HOST",
	"record_store.db.port":     "COPILOT_RECORD_STORE_DB_PORT",
	"record_store.db.user":     "COPILOT_RECORD_STORE_DB_USER",
	"record_store.db.password": "COPILOT_RECORD_STORE_DB_PASSWORD",
	"record_store.db.name":     "COPILOT_RECORD_STORE_DB_NAME",
	"record_store.db.sslmode":  "COPILOT_RECORD_STORE_DB_SSLMODE",
	"record_store.db.max_open": "COPILOT_RECORD_STORE_DB_MAX_OPEN",
	"record_store.db.max_idle": "COPILOT_RECORD_STORE_DB_MAX_IDLE",
	"storage.enabled":          "COPILOT_STORAGE_ENABLED",
	"storage.region":           "COPILOT_STORAGE_REGION",
	"storage.bucket":           "COPILOT_STORAGE_BUCKET",
	"storage.endpoint":         "COPILOT_STORAGE_ENDPOINT",
	"storage.access_key":       "COPILOT_STORAGE_ACCESS_KEY",
	"storage.secret_key":       "COPILOT_STORAGE_SECRET_KEY",
	"storage.presign_expiry":   "COPILOT_STORAGE_PRESIGN_EXPIRY",
	"jira.default_issue_type":  "COPILOT_JIRA_DEFAULT_ISSUE_TYPE",
	"jira.timeout_secs":        "COPILOT_JIRA_TIMEOUT_SECS",
	"cors.allowed_origins":     "COPILOT_CORS_ALLOWED_ORIGINS",
}

var bareBindings = map[string]string{
	"gcp.project_id":         EnvProjectID,
	"gcp.region":             EnvRegion,
	"gcp.docai_processor_id": EnvProcessorID,
}

// Load reads configuration from environment variables with the COPILOT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("COPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// GCP defaults
	v.SetDefault("gcp.project_id", "")
	v.SetDefault("gcp.region", "")
	v.SetDefault("gcp.docai_location", "us")
	v.SetDefault("gcp.docai_processor_id", "")
	v.SetDefault("gcp.timeout_secs", 120)

	// Model defaults
	v.SetDefault("model.provider", "vertex")
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.default_model", "gemini-2.0-flash-lite-001")
	v.SetDefault("model.timeout_secs", 120)
	v.SetDefault("model.chat_max_chars", 550)
	v.SetDefault("model.chat_cut_chars", 520)

	v.SetDefault("upload.max_file_size_mb", 10)
	v.SetDefault("upload.min_text_chars", 50)

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")

	// Record store defaults
	v.SetDefault("record_store.provider", "noop")
	v.SetDefault("record_store.sqlite_path", "copilot.db")
	v.SetDefault("record_store.db.host", "localhost")
	v.SetDefault("record_store.db.port", 5432)
	v.SetDefault("record_store.db.user", "copilot")
	v.SetDefault("record_store.db.password", "copilot_secret")
	v.SetDefault("record_store.db.name", "copilot_db")
	v.SetDefault("record_store.db.sslmode", "disable")
	v.SetDefault("record_store.db.max_open", 10)
	v.SetDefault("record_store.db.max_idle", 5)

	// Storage defaults
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "copilot-exports")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// Jira defaults
	v.SetDefault("jira.default_issue_type", "Test")
	v.SetDefault("jira.timeout_secs", 30)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	for key, env := range envBindings {
		names := []string{env}
		if bare, ok := bareBindings[key]; ok {
			names = append(names, bare)
		}
		_ = v.BindEnv(append([]string{key}, names...)...)
	}

	cfg := &Config{}

	// Cloud Run and similar platforms set PORT. Use it if COPILOT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("COPILOT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.GCP = GCPConfig{
		ProjectID:        v.GetString("gcp.project_id"),
		Region:           v.GetString("gcp.region"),
		DocAILocation:    v.GetString("gcp.docai_location"),
		DocAIProcessorID: v.GetString("gcp.docai_processor_id"),
		TimeoutSecs:      v.GetInt("gcp.timeout_secs"),
	}
	cfg.Model = ModelConfig{
		Provider:     v.GetString("model.provider"),
		APIKey:       v.GetString("model.api_key"),
		DefaultModel: v.GetString("model.default_model"),
		TimeoutSecs:  v.GetInt("model.timeout_secs"),
		ChatMaxChars: v.GetInt("model.chat_max_chars"),
		ChatCutChars: v.GetInt("model.chat_cut_chars"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		MinTextChars:  v.GetInt("upload.min_text_chars"),
	}
	cfg.Session = SessionConfig{
		Store:    v.GetString("session.store"),
		TTL:      v.GetDuration("session.ttl"),
		RedisURL: v.GetString("session.redis_url"),
	}
	cfg.RecordStore = RecordStoreConfig{
		Provider:   v.GetString("record_store.provider"),
		SQLitePath: v.GetString("record_store.sqlite_path"),
		DB: DBConfig{
			Host:     v.GetString("record_store.db.host"),
			Port:     v.GetInt("record_store.db.port"),
			User:     v.GetString("record_store.db.user"),
			Password: v.GetString("record_store.db.password"),
			Name:     v.GetString("record_store.db.name"),
			SSLMode:  v.GetString("record_store.db.sslmode"),
			MaxOpen:  v.GetInt("record_store.db.max_open"),
			MaxIdle:  v.GetInt("record_store.db.max_idle"),
		},
	}
	cfg.Storage = StorageConfig{
		Enabled:       v.GetBool("storage.enabled"),
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		PresignExpiry: v.GetInt64("storage.presign_expiry"),
	}
	cfg.Jira = JiraConfig{
		DefaultIssueType: v.GetString("jira.default_issue_type"),
		TimeoutSecs:      v.GetInt("jira.timeout_secs"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}

// EnvNames returns every environment variable the loader reads, sorted.
func EnvNames() []string {
	names := make([]string, 0, len(envBindings)+len(bareBindings))
	for _, env := range envBindings {
		names = append(names, env)
	}
	for _, env := range bareBindings {
		names = append(names, env)
	}
	sort.Strings(names)
	return names
}
