package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPassword and DefaultSessionSecret keep a fresh checkout usable.
	// Both are reported by Warnings so operators notice them.
	DefaultPassword      = "changeme"
	DefaultSessionSecret = "kanban-secret-key"

	MirrorBackendNone   = "none"
	MirrorBackendGDrive = "gdrive"
	MirrorBackendS3     = "s3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Mirror   MirrorConfig   `yaml:"mirror"`
	S3       S3Config       `yaml:"s3"`
	Upload   UploadConfig   `yaml:"upload"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Logger   LoggerConfig   `yaml:"logger"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	Env             string        `yaml:"env"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	StaticDir       string        `yaml:"static_dir"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Path            string        `yaml:"path"`
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	SeedOnEmpty     bool          `yaml:"seed_on_empty"`
}

type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

type AuthConfig struct {
	Password      string        `yaml:"password"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	CookieName    string        `yaml:"cookie_name"`
}

type MirrorConfig struct {
	Backend string        `yaml:"backend"`
	Timeout time.Duration `yaml:"timeout"`
	GDrive  GDriveConfig  `yaml:"gdrive"`
}

type GDriveConfig struct {
	// Credentials is either the service-account JSON itself or a path to it.
	Credentials string `yaml:"credentials"`
	FolderID    string `yaml:"folder_id"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Prefix    string `yaml:"prefix"`
}

type UploadConfig struct {
	StagingDir string `yaml:"staging_dir"`
	MaxSize    int64  `yaml:"max_size"`
}

type JobsConfig struct {
	StagingCleanupSchedule string        `yaml:"staging_cleanup_schedule"`
	StagingMaxAge          time.Duration `yaml:"staging_max_age"`
	SessionSweepSchedule   string        `yaml:"session_sweep_schedule"`
	MetricsInterval        time.Duration `yaml:"metrics_interval"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3000",
			Mode:            "debug",
			Env:             "development",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			StaticDir:       "public",
		},
		Database: DatabaseConfig{
			Path:            "kanban.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			SeedOnEmpty:     true,
		},
		Redis: RedisConfig{
			KeyPrefix: "kanban:session:",
		},
		Auth: AuthConfig{
			Password:      DefaultPassword,
			SessionSecret: DefaultSessionSecret,
			SessionTTL:    24 * time.Hour,
			CookieName:    "kanban_session",
		},
		Mirror: MirrorConfig{
			Timeout: 60 * time.Second,
			GDrive: GDriveConfig{
				FolderID: "root",
			},
		},
		S3: S3Config{
			Prefix: "uploads",
		},
		Upload: UploadConfig{
			StagingDir: "uploads",
			MaxSize:    50 << 20,
		},
		Jobs: JobsConfig{
			StagingCleanupSchedule: "@every 10m",
			StagingMaxAge:          time.Hour,
			SessionSweepSchedule:   "@every 15m",
			MetricsInterval:        60 * time.Second,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path when it exists and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.IsProduction() && os.Getenv("SERVER_MODE") == "" {
		cfg.Server.Mode = "release"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Mode, "SERVER_MODE")
	setString(&cfg.Server.Env, "ENV")
	setString(&cfg.Server.Env, "NODE_ENV")
	setString(&cfg.Server.StaticDir, "STATIC_DIR")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}
	setString(&cfg.Logger.Level, "LOG_LEVEL")

	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Redis.URL, "REDIS_URL")

	setString(&cfg.Auth.Password, "KANBAN_PASSWORD")
	setString(&cfg.Auth.SessionSecret, "SESSION_SECRET")

	setString(&cfg.Mirror.Backend, "MIRROR_BACKEND")
	setString(&cfg.Mirror.GDrive.Credentials, "GOOGLE_DRIVE_CREDENTIALS")
	setString(&cfg.Mirror.GDrive.FolderID, "GOOGLE_DRIVE_FOLDER_ID")

	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")

	setString(&cfg.Upload.StagingDir, "UPLOAD_STAGING_DIR")

	if v := os.Getenv("SEED_ON_EMPTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_ON_EMPTY %q: %w", v, err)
		}
		cfg.Database.SeedOnEmpty = b
	}
	if v := os.Getenv("UPLOAD_MAX_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_MAX_SIZE %q: %w", v, err)
		}
		cfg.Upload.MaxSize = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SESSION_TTL", &cfg.Auth.SessionTTL},
		{"MIRROR_TIMEOUT", &cfg.Mirror.Timeout},
		{"STAGING_MAX_AGE", &cfg.Jobs.StagingMaxAge},
		{"SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, v, err)
		}
		*d.dst = parsed
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Auth.Password == "" {
		return fmt.Errorf("auth password must not be empty")
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("session secret must not be empty")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	switch c.MirrorBackend() {
	case MirrorBackendNone, MirrorBackendGDrive:
	case MirrorBackendS3:
		if c.S3.Bucket == "" || c.S3.Region == "" {
			return fmt.Errorf("s3 mirror requires bucket and region")
		}
	default:
		return fmt.Errorf("unknown mirror backend %q", c.Mirror.Backend)
	}
	return nil
}

// IsProduction reports whether the server runs in production. Session
// cookies are marked Secure only then.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// MirrorBackend resolves which mirror to build. An explicit backend wins;
// otherwise Drive credentials select gdrive and an S3 bucket selects s3.
func (c *Config) MirrorBackend() string {
	if c.Mirror.Backend != "" {
		return strings.ToLower(c.Mirror.Backend)
	}
	if c.Mirror.GDrive.Credentials != "" {
		return MirrorBackendGDrive
	}
	if c.S3.Bucket != "" {
		return MirrorBackendS3
	}
	return MirrorBackendNone
}

// Warnings lists insecure defaults still in effect.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Auth.Password == DefaultPassword {
		warnings = append(warnings, "KANBAN_PASSWORD is not set, using the default password")
	}
	if c.Auth.SessionSecret == DefaultSessionSecret {
		warnings = append(warnings, "SESSION_SECRET is not set, using the default signing secret")
	}
	return warnings
}

// GetDSN returns the database URL when one is configured, the SQLite file
// path otherwise.
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

// CredentialsJSON returns the service-account key. Values that do not look
// like a JSON object are read as a file path.
func (g GDriveConfig) CredentialsJSON() ([]byte, error) {
	raw := strings.TrimSpace(g.Credentials)
	if raw == "" {
		return nil, fmt.Errorf("google drive credentials are not configured")
	}
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}
	data, err := os.ReadFile(raw)
	if err != nil {
		return nil, fmt.Errorf("read google drive credentials: %w", err)
	}
	return data, nil
}
