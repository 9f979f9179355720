package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535

	// MaxListLimit caps the featured/recent limits
	MaxListLimit = 50
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Environment variables that override values from the config file
const (
	EnvDBPassword       = "JOBBOARD_DB_PASSWORD"
	EnvRabbitMQPassword = "JOBBOARD_RABBITMQ_PASSWORD"
	EnvStorageDriver    = "JOBBOARD_STORAGE_DRIVER"
	EnvServerPort       = "JOBBOARD_SERVER_PORT"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	App      AppConfig      `yaml:"app"`
	Logging  LoggingConfig  `yaml:"logging"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Events   EventsConfig   `yaml:"events"`
	Worker   WorkerConfig   `yaml:"worker"`
	Board    BoardConfig    `yaml:"board"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects the board store
type StorageConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange/queue configuration
type RabbitMQConfig struct {
	Host       string           `yaml:"host"`
	Port       int              `yaml:"port"`
	User       string           `yaml:"user"`
	Password   string           `yaml:"password"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Queue      QueueConfig      `yaml:"queue"`
	BindingKey string           `yaml:"binding_key"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
	Consumer   ConsumerConfig   `yaml:"consumer"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
}

// QueueConfig holds RabbitMQ queue configuration
type QueueConfig struct {
	Name       string `yaml:"name"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
	Exclusive  bool   `yaml:"exclusive"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	Heartbeat         time.Duration `yaml:"heartbeat"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// ConsumerConfig holds RabbitMQ consumer settings
type ConsumerConfig struct {
	Tag           string `yaml:"tag"`
	PrefetchCount int    `yaml:"prefetch_count"`
}

// EventsConfig controls publishing of board events by the API
type EventsConfig struct {
	Enabled        bool          `yaml:"enabled"`
	PublishTimeout time.Duration `yaml:"publish_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// WorkerConfig holds worker service configuration
type WorkerConfig struct {
	Concurrency     int           `yaml:"concurrency"`
	BufferSize      int           `yaml:"buffer_size"`
	HandleTimeout   time.Duration `yaml:"handle_timeout"`
	StatsInterval   time.Duration `yaml:"stats_interval"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// BoardConfig holds job board behaviour
type BoardConfig struct {
	SeedFixtures  bool `yaml:"seed_fixtures"`
	FeaturedLimit int  `yaml:"featured_limit"`
	RecentLimit   int  `yaml:"recent_limit"`
}

// Load reads and parses the configuration file, then applies environment
// overrides
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}

	if v, ok := os.LookupEnv(EnvRabbitMQPassword); ok {
		c.RabbitMQ.Password = v
	}

	if v, ok := os.LookupEnv(EnvStorageDriver); ok && v != "" {
		c.Storage.Driver = v
	}

	if v, ok := os.LookupEnv(EnvServerPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a number", EnvServerPort, v)
		}
		c.Server.Port = port
	}

	return nil
}

// ValidateAPIConfig checks the settings used by the API service. Database and
// RabbitMQ settings are only required when the chosen driver or event
// publishing needs them.
func (c *Config) ValidateAPIConfig() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if !slices.Contains([]string{DriverMemory, DriverPostgres}, c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver: %q (must be %q or %q)", c.Storage.Driver, DriverMemory, DriverPostgres)
	}

	if c.Storage.Driver == DriverPostgres {
		if err := c.validateDatabase(); err != nil {
			return err
		}
	}

	if c.Events.Enabled {
		if err := c.validateRabbitMQ(false); err != nil {
			return err
		}
	}

	if err := validateLimit("board featured_limit", c.Board.FeaturedLimit); err != nil {
		return err
	}

	return validateLimit("board recent_limit", c.Board.RecentLimit)
}

// ValidateWorkerConfig checks the settings used by the worker service
func (c *Config) ValidateWorkerConfig() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateRabbitMQ(true); err != nil {
		return err
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker concurrency must be greater than 0")
	}

	if c.Worker.BufferSize <= 0 {
		return fmt.Errorf("worker buffer_size must be greater than 0")
	}

	if c.Worker.HandleTimeout <= 0 {
		return fmt.Errorf("worker handle_timeout must be greater than 0")
	}

	if c.Worker.StatsInterval <= 0 {
		return fmt.Errorf("worker stats_interval must be greater than 0")
	}

	if c.Worker.ShutdownTimeout <= 0 {
		return fmt.Errorf("worker shutdown_timeout must be greater than 0")
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	return nil
}

func (c *Config) validateRabbitMQ(consumer bool) error {
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required")
	}

	if c.RabbitMQ.Port < MinPort || c.RabbitMQ.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.RabbitMQ.Port, MinPort, MaxPort)
	}

	if c.RabbitMQ.Exchange.Name == "" {
		return fmt.Errorf("rabbitmq exchange name is required")
	}

	if !consumer {
		return nil
	}

	if c.RabbitMQ.Queue.Name == "" {
		return fmt.Errorf("rabbitmq queue name is required")
	}

	if c.RabbitMQ.BindingKey == "" {
		return fmt.Errorf("rabbitmq binding_key is required")
	}

	return nil
}

// validateLimit accepts zero, which means "use the built-in default"
func validateLimit(name string, v int) error {
	if v < 0 || v > MaxListLimit {
		return fmt.Errorf("invalid %s: %d (must be between 1 and %d, or 0 for the default)", name, v, MaxListLimit)
	}
	return nil
}
