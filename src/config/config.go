package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"sigs.k8s.io/yaml"
)

const (
	ElevatorNamePrefix = "Elevator"
	// SelectedPenalty is the distance given to an already selected car so it
	// loses every comparison against an unselected one.
	SelectedPenalty = math.MaxInt

	PolicyNearest = "nearest"
	PolicyScan    = "scan"

	DefaultPolicy   = PolicyScan
	DefaultLogLevel = "info"

	EnvPolicy   = "MULTIVATOR_POLICY"
	EnvParallel = "MULTIVATOR_PARALLEL"
	EnvLogLevel = "MULTIVATOR_LOG_LEVEL"
)

// FloorBounds limits where a simulated car may go. Unset means unbounded.
type FloorBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b *FloorBounds) Contains(floor int) bool {
	if b == nil {
		return true
	}
	return floor >= b.Min && floor <= b.Max
}

type Config struct {
	Policy   string       `json:"policy"`
	Parallel bool         `json:"parallel"`
	Bounds   *FloorBounds `json:"floorBounds,omitempty"`
	LogLevel string       `json:"logLevel"`
	LogFile  string       `json:"logFile,omitempty"`
}

func Default() Config {
	return Config{
		Policy:   DefaultPolicy,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the YAML file at path (if any), fills in defaults and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file - %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s - %w", path, err)
		}
	}
	cfg.Policy = GetEnvString(EnvPolicy, cfg.Policy)
	cfg.Parallel = GetEnvBool(EnvParallel, cfg.Parallel)
	cfg.LogLevel = GetEnvString(EnvLogLevel, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	slog.Debug("Config loaded", "policy", cfg.Policy, "parallel", cfg.Parallel, "bounds", cfg.Bounds)
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Policy {
	case PolicyNearest, PolicyScan:
	default:
		return fmt.Errorf("unknown servicing policy %q", c.Policy)
	}
	if c.Bounds != nil && c.Bounds.Min > c.Bounds.Max {
		return fmt.Errorf("floor bounds min %d above max %d", c.Bounds.Min, c.Bounds.Max)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}
