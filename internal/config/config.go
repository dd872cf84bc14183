package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config aggregates application configuration values. It is built once at
// startup and treated as read-only afterwards.
type Config struct {
	HTTP    HTTPConfig    `toml:"http"`
	Graph   GraphConfig   `toml:"graph"`
	Logging LoggingConfig `toml:"logging"`
	Solver  SolverConfig  `toml:"solver"`
	Tracing TracingConfig `toml:"tracing"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string        `toml:"host"`
	Port              int           `toml:"port"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	IdleTimeout       time.Duration `toml:"idle_timeout"`
	ReadHeaderTimeout time.Duration `toml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes      int64         `toml:"max_body_bytes"`
	MetricsEnabled    bool          `toml:"metrics_enabled"`
	AllowedOriginsCSV string        `toml:"allowed_origins"`
}

// GraphConfig describes the optional Neo4j source of named networks.
// An empty URI disables network routes.
// TxTimeout bounds each read transaction server-side; MaxRetryTime bounds how
// long the driver retries transient read failures.
type GraphConfig struct {
	URI            string        `toml:"uri"`
	Database       string        `toml:"database"`
	Username       string        `toml:"username"`
	Password       string        `toml:"password"`
	MaxConnections int           `toml:"max_connections"`
	TxTimeout      time.Duration `toml:"tx_timeout"`
	MaxRetryTime   time.Duration `toml:"max_retry_time"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `toml:"level"`
	Format        string `toml:"format"` // text|json
	IncludeCaller bool   `toml:"include_caller"`
	File          string `toml:"file"`
	MaxSizeMB     int    `toml:"max_size_mb"`
	MaxBackups    int    `toml:"max_backups"`
	MaxAgeDays    int    `toml:"max_age_days"`
	Compress      bool   `toml:"compress"`
}

// SolverConfig bounds and tunes shortest-path computations.
type SolverConfig struct {
	MaxNodes        int    `toml:"max_nodes"`
	DuplicatePolicy string `toml:"duplicate_policy"` // last_wins|keep_min|reject
	EndpointPolicy  string `toml:"endpoint_policy"`  // reject|ignore
	BatchWorkers    int    `toml:"batch_workers"`
	MaxBatchSize    int    `toml:"max_batch_size"`
}

// TracingConfig toggles OpenTelemetry spans around computations.
type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	ServiceName string  `toml:"service_name"`
	SampleRatio float64 `toml:"sample_ratio"`
}

// FileEnv names the environment variable holding an optional TOML config path.
const FileEnv = "PATHFINDER_CONFIG"

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 5001
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultReadHeader       = 5 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultMaxBodyBytes     = 4 << 20
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultLogMaxSizeMB     = 100
	defaultLogMaxBackups    = 7
	defaultLogMaxAgeDays    = 30
	defaultGraphMaxSessions = 10
	defaultGraphTxTimeout   = 15 * time.Second
	defaultGraphTxRetry     = 10 * time.Second
	defaultMaxNodes         = 100000
	defaultBatchWorkers     = 4
	defaultMaxBatchSize     = 64
	defaultServiceName      = "pathfinder"
)

// Default returns the configuration used when neither a file nor env vars override anything.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:              defaultHost,
			Port:              defaultPort,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeader,
			ShutdownTimeout:   defaultShutdownTimeout,
			MaxBodyBytes:      defaultMaxBodyBytes,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
			TxTimeout:      defaultGraphTxTimeout,
			MaxRetryTime:   defaultGraphTxRetry,
		},
		Logging: LoggingConfig{
			Level:      defaultLoggingLevel,
			Format:     defaultLoggingFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
			Compress:   true,
		},
		Solver: SolverConfig{
			MaxNodes:        defaultMaxNodes,
			DuplicatePolicy: "last_wins",
			EndpointPolicy:  "reject",
			BatchWorkers:    defaultBatchWorkers,
			MaxBatchSize:    defaultMaxBatchSize,
		},
		Tracing: TracingConfig{
			ServiceName: defaultServiceName,
			SampleRatio: 1,
		},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// PATHFINDER_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

// LoadFile builds the configuration from defaults and the given TOML file only.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := decodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)

	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"SERVER_READ_HEADER_TIMEOUT", &cfg.HTTP.ReadHeaderTimeout},
		{"GRAPH_TX_TIMEOUT", &cfg.Graph.TxTimeout},
		{"GRAPH_MAX_RETRY_TIME", &cfg.Graph.MaxRetryTime},
	}
	for _, d := range durations {
		if v := os.Getenv(d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	cfg.HTTP.MaxBodyBytes = int64(parseIntWithDefault("SERVER_MAX_BODY_BYTES", int(cfg.HTTP.MaxBodyBytes)))
	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", cfg.HTTP.MetricsEnabled)
	cfg.HTTP.AllowedOriginsCSV = valueOrDefault("SERVER_ALLOWED_ORIGINS", cfg.HTTP.AllowedOriginsCSV)

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)
	cfg.Logging.File = valueOrDefault("LOG_FILE", cfg.Logging.File)

	cfg.Solver.MaxNodes = parseIntWithDefault("SOLVER_MAX_NODES", cfg.Solver.MaxNodes)
	cfg.Solver.DuplicatePolicy = valueOrDefault("SOLVER_DUPLICATE_POLICY", cfg.Solver.DuplicatePolicy)
	cfg.Solver.EndpointPolicy = valueOrDefault("SOLVER_ENDPOINT_POLICY", cfg.Solver.EndpointPolicy)
	cfg.Solver.BatchWorkers = parseIntWithDefault("SOLVER_BATCH_WORKERS", cfg.Solver.BatchWorkers)
	cfg.Solver.MaxBatchSize = parseIntWithDefault("SOLVER_MAX_BATCH_SIZE", cfg.Solver.MaxBatchSize)

	cfg.Tracing.Enabled = parseBoolWithDefault("TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.ServiceName = valueOrDefault("TRACING_SERVICE_NAME", cfg.Tracing.ServiceName)
	return nil
}

func (c Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.HTTP.Port)
	}
	if c.Solver.BatchWorkers <= 0 {
		return fmt.Errorf("solver batch_workers must be positive, got %d", c.Solver.BatchWorkers)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample_ratio must be within [0,1], got %v", c.Tracing.SampleRatio)
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
