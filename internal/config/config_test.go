package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAPIConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: DriverPostgres},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "jobboard",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			Exchange: ExchangeConfig{
				Name: "board_events",
			},
		},
		Events: EventsConfig{Enabled: true},
		Board:  BoardConfig{FeaturedLimit: 4, RecentLimit: 6},
	}
}

func validWorkerConfig() *Config {
	cfg := validAPIConfig()
	cfg.RabbitMQ.Queue = QueueConfig{Name: "board_audit"}
	cfg.RabbitMQ.BindingKey = "#"
	cfg.Worker = WorkerConfig{
		Concurrency:     4,
		BufferSize:      100,
		HandleTimeout:   5 * time.Second,
		StatsInterval:   time.Minute,
		ShutdownTimeout: 30 * time.Second,
	}
	return cfg
}

func TestConfig_ValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name: "memory driver needs no database",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverMemory
				c.Database = DatabaseConfig{}
			},
		},
		{
			name: "events disabled needs no rabbitmq",
			mutate: func(c *Config) {
				c.Events.Enabled = false
				c.RabbitMQ = RabbitMQConfig{}
			},
		},
		{
			name:   "zero limits use defaults",
			mutate: func(c *Config) { c.Board = BoardConfig{} },
		},
		{
			name:      "invalid server port - zero",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "unknown storage driver",
			mutate:    func(c *Config) { c.Storage.Driver = "mysql" },
			wantErr:   true,
			errString: "invalid storage driver",
		},
		{
			name:      "empty storage driver",
			mutate:    func(c *Config) { c.Storage.Driver = "" },
			wantErr:   true,
			errString: "invalid storage driver",
		},
		{
			name:      "empty database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "empty database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name:      "empty rabbitmq host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name:      "empty exchange name",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			wantErr:   true,
			errString: "rabbitmq exchange name is required",
		},
		{
			name:      "featured limit too large",
			mutate:    func(c *Config) { c.Board.FeaturedLimit = 51 },
			wantErr:   true,
			errString: "invalid board featured_limit",
		},
		{
			name:      "negative recent limit",
			mutate:    func(c *Config) { c.Board.RecentLimit = -1 },
			wantErr:   true,
			errString: "invalid board recent_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAPIConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name: "database is always required",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverMemory
				c.Database.Host = ""
			},
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "empty queue name",
			mutate:    func(c *Config) { c.RabbitMQ.Queue.Name = "" },
			wantErr:   true,
			errString: "rabbitmq queue name is required",
		},
		{
			name:      "empty binding key",
			mutate:    func(c *Config) { c.RabbitMQ.BindingKey = "" },
			wantErr:   true,
			errString: "rabbitmq binding_key is required",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *Config) { c.Worker.Concurrency = 0 },
			wantErr:   true,
			errString: "worker concurrency must be greater than 0",
		},
		{
			name:      "zero buffer",
			mutate:    func(c *Config) { c.Worker.BufferSize = 0 },
			wantErr:   true,
			errString: "worker buffer_size must be greater than 0",
		},
		{
			name:      "zero handle timeout",
			mutate:    func(c *Config) { c.Worker.HandleTimeout = 0 },
			wantErr:   true,
			errString: "worker handle_timeout must be greater than 0",
		},
		{
			name:      "zero stats interval",
			mutate:    func(c *Config) { c.Worker.StatsInterval = 0 },
			wantErr:   true,
			errString: "worker stats_interval must be greater than 0",
		},
		{
			name:      "zero shutdown timeout",
			mutate:    func(c *Config) { c.Worker.ShutdownTimeout = 0 },
			wantErr:   true,
			errString: "worker shutdown_timeout must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validWorkerConfig()
			tt.mutate(cfg)

			err := cfg.ValidateWorkerConfig()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		require.NoError(t, cfg.ValidateAPIConfig())
		require.NoError(t, cfg.ValidateWorkerConfig())

		assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "topic", cfg.RabbitMQ.Exchange.Type)
		assert.Equal(t, "#", cfg.RabbitMQ.BindingKey)
		assert.Equal(t, 2.0, cfg.RabbitMQ.Publish.BackoffMultiplier)
		assert.True(t, cfg.Events.Enabled)
		assert.True(t, cfg.Board.SeedFixtures)
	})

	t.Run("memory only config", func(t *testing.T) {
		cfg, err := Load("testdata/memory_only.yaml")
		require.NoError(t, err)
		require.NoError(t, cfg.ValidateAPIConfig())
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing database", func(t *testing.T) {
		cfg, err := Load("testdata/missing_database.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database name is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("testdata/does_not_exist.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvRabbitMQPassword, "rabbit-env")
	t.Setenv(EnvStorageDriver, DriverMemory)
	t.Setenv(EnvServerPort, "9090")

	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "rabbit-env", cfg.RabbitMQ.Password)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv(EnvServerPort, "eighty")

	_, err := Load("testdata/valid_config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvServerPort)
}

func TestPortConstants(t *testing.T) {
	t.Run("port constants are correct", func(t *testing.T) {
		assert.Equal(t, 1, MinPort)
		assert.Equal(t, 65535, MaxPort)
	})

	t.Run("invalid port range", func(t *testing.T) {
		invalidPorts := []int{0, -1, 65536, 70000}
		for _, port := range invalidPorts {
			valid := port >= MinPort && port <= MaxPort
			assert.False(t, valid, "port %d should be invalid", port)
		}
	})
}
