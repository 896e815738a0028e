package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/stockpile/pkg/errors"
)

// EnvPrefix prefixes environment overrides, e.g. STOCKPILE_LOGGING_LEVEL.
const EnvPrefix = "STOCKPILE"

// LoadViper resolves the configuration from, in order of precedence: flags
// bound to v, STOCKPILE_* environment variables, the YAML file at path (if
// not empty) and Default. The result is validated.
func LoadViper(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
				WithDetail("path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode config")
	}
	if len(cfg.Pools) == 0 {
		cfg.Pools = DefaultPools()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every scalar key so environment variables can
// override it. Pools are a list and are only read from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("logging.output_paths", d.Logging.OutputPaths)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)

	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.service_version", d.Tracing.ServiceVersion)
	v.SetDefault("tracing.sampling_rate", d.Tracing.SamplingRate)

	v.SetDefault("workload.rounds", d.Workload.Rounds)
	v.SetDefault("workload.burst", d.Workload.Burst)
	v.SetDefault("workload.workers", d.Workload.Workers)
	v.SetDefault("workload.timeout", d.Workload.Timeout)
}
