package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Churn  ChurnConfig  `yaml:"churn" mapstructure:"churn"`
	Value  ValueConfig  `yaml:"value" mapstructure:"value"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	CORSOrigins     []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RequestsPerSec  float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	RequestBurst    int      `yaml:"request_burst" mapstructure:"request_burst"`
	ShutdownTimeout int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// StoreConfig configures the run-history database. An empty DSN disables
// persistence entirely.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TreatmentCategory is one entry in the ordered treatment keyword table.
// Categories are checked in slice order and the first matching one wins.
type TreatmentCategory struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// MatchConfig holds the scoring tables and weights for transaction matching.
// These are read-only after process start; changing any weight or threshold is
// a versioned product change.
type MatchConfig struct {
	// Feature weights (sum = 1.0).
	NameWeight    float64 `yaml:"name_weight" mapstructure:"name_weight"`
	ServiceWeight float64 `yaml:"service_weight" mapstructure:"service_weight"`
	DateWeight    float64 `yaml:"date_weight" mapstructure:"date_weight"`
	AmountWeight  float64 `yaml:"amount_weight" mapstructure:"amount_weight"`

	// Probability boosts.
	CategoryBoost    float64 `yaml:"category_boost" mapstructure:"category_boost"`
	DateBoost        float64 `yaml:"date_boost" mapstructure:"date_boost"`
	BoostNameMinimum float64 `yaml:"boost_name_minimum" mapstructure:"boost_name_minimum"`
	BoostDateMinimum float64 `yaml:"boost_date_minimum" mapstructure:"boost_date_minimum"`

	// Classification thresholds. Fixed buckets, independent of the
	// caller-supplied predicted-match threshold.
	HighThreshold   float64 `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold float64 `yaml:"medium_threshold" mapstructure:"medium_threshold"`

	// Default predicted-match threshold when the caller supplies none.
	DefaultThreshold float64 `yaml:"default_threshold" mapstructure:"default_threshold"`

	// Amount ratio band: reward amount as a fraction of the POS amount.
	AmountRatioMin float64 `yaml:"amount_ratio_min" mapstructure:"amount_ratio_min"`
	AmountRatioMax float64 `yaml:"amount_ratio_max" mapstructure:"amount_ratio_max"`

	// Date proximity decay window in hours.
	DateDecayHours float64 `yaml:"date_decay_hours" mapstructure:"date_decay_hours"`

	// Ordered treatment keyword table and accepted date layouts.
	Categories  []TreatmentCategory `yaml:"categories" mapstructure:"categories"`
	DateFormats []string            `yaml:"date_formats" mapstructure:"date_formats"`
}

// ChurnConfig holds the churn-risk heuristic parameters.
type ChurnConfig struct {
	BaseProbability  float64 `yaml:"base_probability" mapstructure:"base_probability"`
	EngagementWeight float64 `yaml:"engagement_weight" mapstructure:"engagement_weight"`
	UsageWeight      float64 `yaml:"usage_weight" mapstructure:"usage_weight"`
	SupportWeight    float64 `yaml:"support_weight" mapstructure:"support_weight"`
	ValueWeight      float64 `yaml:"value_weight" mapstructure:"value_weight"`

	CriticalThreshold float64 `yaml:"critical_threshold" mapstructure:"critical_threshold"`
	HighThreshold     float64 `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold   float64 `yaml:"medium_threshold" mapstructure:"medium_threshold"`
	LowThreshold      float64 `yaml:"low_threshold" mapstructure:"low_threshold"`
}

// ValueConfig holds the medical-spa industry benchmarks used for ROI math.
type ValueConfig struct {
	HourlyRate            float64 `yaml:"hourly_rate" mapstructure:"hourly_rate"`
	HoursPerTransaction   float64 `yaml:"hours_per_transaction" mapstructure:"hours_per_transaction"`
	CostPerError          float64 `yaml:"cost_per_error" mapstructure:"cost_per_error"`
	DefaultSubscription   float64 `yaml:"default_subscription" mapstructure:"default_subscription"`
	AccuracyBaseline      float64 `yaml:"accuracy_baseline" mapstructure:"accuracy_baseline"`
	DefaultAccuracy       float64 `yaml:"default_accuracy" mapstructure:"default_accuracy"`
	DefaultMonthlyRevenue float64 `yaml:"default_monthly_revenue" mapstructure:"default_monthly_revenue"`
	DefaultTeamSize       float64 `yaml:"default_team_size" mapstructure:"default_team_size"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RECONCILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8080",
		"https://medspasync.com",
		"https://www.medspasync.com",
	})
	v.SetDefault("server.requests_per_sec", 50)
	v.SetDefault("server.request_burst", 100)
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "reconcile.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("match.name_weight", 0.4)
	v.SetDefault("match.service_weight", 0.3)
	v.SetDefault("match.date_weight", 0.2)
	v.SetDefault("match.amount_weight", 0.1)
	v.SetDefault("match.category_boost", 0.2)
	v.SetDefault("match.date_boost", 0.1)
	v.SetDefault("match.boost_name_minimum", 0.8)
	v.SetDefault("match.boost_date_minimum", 0.8)
	v.SetDefault("match.high_threshold", 0.95)
	v.SetDefault("match.medium_threshold", 0.80)
	v.SetDefault("match.default_threshold", 0.95)
	v.SetDefault("match.amount_ratio_min", 0.05)
	v.SetDefault("match.amount_ratio_max", 0.5)
	v.SetDefault("match.date_decay_hours", 168)

	v.SetDefault("churn.base_probability", 0.1)
	v.SetDefault("churn.engagement_weight", 0.3)
	v.SetDefault("churn.usage_weight", 0.25)
	v.SetDefault("churn.support_weight", 0.2)
	v.SetDefault("churn.value_weight", 0.25)
	v.SetDefault("churn.critical_threshold", 0.8)
	v.SetDefault("churn.high_threshold", 0.6)
	v.SetDefault("churn.medium_threshold", 0.4)
	v.SetDefault("churn.low_threshold", 0.2)

	v.SetDefault("value.hourly_rate", 45.0)
	v.SetDefault("value.hours_per_transaction", 0.25)
	v.SetDefault("value.cost_per_error", 150.0)
	v.SetDefault("value.default_subscription", 299.0)
	v.SetDefault("value.accuracy_baseline", 0.85)
	v.SetDefault("value.default_accuracy", 0.947)
	v.SetDefault("value.default_monthly_revenue", 50000.0)
	v.SetDefault("value.default_team_size", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
