package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Detection DetectionConfig `yaml:"detection"`
	Device    DeviceConfig    `yaml:"device"`
	Lockers   LockerConfig    `yaml:"lockers"`
	Pricing   PricingConfig   `yaml:"pricing"`
	Email     EmailConfig     `yaml:"email"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// StorageConfig contains image file storage settings
type StorageConfig struct {
	RootDir        string `yaml:"root_dir"`
	ThumbnailMaxPx int    `yaml:"thumbnail_max_px"`
}

// DetectionConfig contains settings for the external object-detection service
type DetectionConfig struct {
	BaseURL        string   `yaml:"base_url"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Confidence     float64  `yaml:"confidence"`
	ClassNames     []string `yaml:"class_names"`
}

// DeviceConfig contains settings for the locker capture device peer
type DeviceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LockerConfig declares the fixed universe of locker identifiers
type LockerConfig struct {
	IDs []string `yaml:"ids"`
}

// PricingConfig contains the fee rates applied on top of the usage fee
type PricingConfig struct {
	InsuranceRate float64 `yaml:"insurance_rate"`
	ServiceRate   float64 `yaml:"service_rate"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// SchedulerConfig contains cron specs for background jobs
type SchedulerConfig struct {
	OverdueReminders string `yaml:"overdue_reminders"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file, applies environment variable
// overrides and defaults, and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("DETECTION_BASE_URL"); val != "" {
		c.Detection.BaseURL = val
	}
	if val := os.Getenv("DEVICE_BASE_URL"); val != "" {
		c.Device.BaseURL = val
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Storage.RootDir == "" {
		c.Storage.RootDir = "./images"
	}
	if c.Storage.ThumbnailMaxPx == 0 {
		c.Storage.ThumbnailMaxPx = 256
	}
	if c.Detection.TimeoutSeconds == 0 {
		c.Detection.TimeoutSeconds = 30
	}
	if c.Detection.Confidence == 0 {
		c.Detection.Confidence = 0.5
	}
	if len(c.Detection.ClassNames) == 0 {
		c.Detection.ClassNames = []string{"crack", "scratch"}
	}
	if c.Device.TimeoutSeconds == 0 {
		c.Device.TimeoutSeconds = 10
	}
	if len(c.Lockers.IDs) == 0 {
		c.Lockers.IDs = []string{"101", "102", "103", "104", "105"}
	}
	if c.Pricing.InsuranceRate == 0 {
		c.Pricing.InsuranceRate = 0.05
	}
	if c.Pricing.ServiceRate == 0 {
		c.Pricing.ServiceRate = 0.05
	}
	if c.Scheduler.OverdueReminders == "" {
		// hourly, on the hour
		c.Scheduler.OverdueReminders = "0 * * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks required configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Detection.BaseURL == "" {
		return fmt.Errorf("detection base_url is required")
	}
	if c.Email.Enabled && c.Email.APIKey == "" {
		return fmt.Errorf("email api_key is required when email is enabled")
	}
	return nil
}

// GetServerAddress returns the host:port the HTTP server listens on
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString returns the PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password,
		c.Database.Database, c.Database.SSLMode)
}

// DetectionTimeout returns the detection call timeout as a duration
func (c *Config) DetectionTimeout() time.Duration {
	return time.Duration(c.Detection.TimeoutSeconds) * time.Second
}

// DeviceTimeout returns the device call timeout as a duration
func (c *Config) DeviceTimeout() time.Duration {
	return time.Duration(c.Device.TimeoutSeconds) * time.Second
}
