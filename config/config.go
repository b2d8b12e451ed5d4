package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultTargetURL is the Norwegian Prima 14-day Iceland round trip result
// page this watcher was built for. Override with watch.target_url.
const defaultTargetURL = "https://www.ncl.com/no/en/cruises/" +
	"14-day-iceland-round-trip-london-reykjavik-belfast-and-paris-PRIMA14SOULEHBFSREYISAAKUGNRBGOSVGSOU" +
	"?destinations=4294949354,4294949395,4294949385" +
	"&sailMonths=4294949333&numberOfGuests=4294949461" +
	"&sortBy=price&autoPopulate=f&from=resultpage" +
	"&itineraryCode=PRIMA14SOULEHBFSREYISAAKUGNRBGOSVGSOU"

type Config struct {
	Environment string         `mapstructure:"environment"` // "dev" or "prod"
	Watch       WatchConfig    `mapstructure:"watch"`
	Telegram    TelegramConfig `mapstructure:"telegram"`
	Log         LogConfig      `mapstructure:"log"`
}

type WatchConfig struct {
	TargetURL    string        `mapstructure:"target_url"`
	Label        string        `mapstructure:"label"`         // ship/itinerary name used in alert text
	IntervalMin  int           `mapstructure:"interval_min"`  // minutes between checks
	SnapshotFile string        `mapstructure:"snapshot_file"` // last-seen price file
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	FetchRetries int           `mapstructure:"fetch_retries"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from an optional config.yaml and overrides with environment
// variables; the file is optional because the watcher normally runs from
// environment variables alone.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Support environment variables with dot notation (e.g., WATCH_TARGET_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Operator-facing variable names that predate the yaml layout.
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("watch.interval_min", "CHECK_INTERVAL_MIN")
	v.BindEnv("watch.snapshot_file", "LAST_PRICE_FILE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("failed to read config: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("watch.target_url", defaultTargetURL)
	v.SetDefault("watch.label", "Norwegian Prima")
	v.SetDefault("watch.interval_min", 1)
	v.SetDefault("watch.snapshot_file", "last_price.json")
	v.SetDefault("watch.fetch_timeout", 20*time.Second)
	v.SetDefault("watch.fetch_retries", 3)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")
}
