package config

import (
	"fmt"
	"strings"

	"github.com/jinzhu/configor"
)

type Config struct {
	AppConfig   AppConfig   `env:"APPCONFIG"`
	DBConfig    DBConfig    `env:"DBCONFIG"`
	KafkaConfig KafkaConfig `env:"KAFKACONFIG"`
}

type AppConfig struct {
	APPName  string `default:"knightrun" env:"APP_NAME"`
	Version  string `default:"0.1" env:"VERSION"`
	Port     int    `default:"3000" env:"PORT"`
	Env      string `default:"production" env:"APP_ENV"`
	LogLevel string `default:"info" env:"LOG_LEVEL"`
	// HideErrors drops the underlying error text from 500 responses.
	HideErrors bool `env:"HIDE_ERRORS"`
}

type DBConfig struct {
	// URL, when set, is used verbatim and wins over the individual fields.
	URL      string `env:"DATABASE_URL"`
	Host     string `default:"localhost" env:"DBHOST"`
	DataBase string `default:"knightrun" env:"DBNAME"`
	User     string `default:"postgres" env:"DBUSERNAME"`
	Password string `env:"DBPASSWORD"`
	Port     uint   `default:"5432" env:"DBPORT"`
	SSLMode  string `default:"disable" env:"DBSSL"`

	MaxOpenConns           int  `default:"10" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns           int  `default:"5" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetimeMinutes int  `default:"30" env:"DB_CONN_MAX_LIFETIME_MINUTES"`
	QueryTimeoutSeconds    int  `default:"5" env:"DB_QUERY_TIMEOUT_SECONDS"`
	SkipMigrate            bool `env:"DB_SKIP_MIGRATE"`
}

type KafkaConfig struct {
	BrokersString string `env:"KAFKA_BROKERS"`
	Brokers       []string
	Topic         string `default:"knightrun-events" env:"KAFKA_TOPIC"`
}

// LoadConfig reads the optional JSON file at path and then applies env overrides.
func LoadConfig(path string) (Config, error) {
	var config = Config{}
	if err := configor.Load(&config, path); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	config.KafkaConfig.Brokers = splitList(config.KafkaConfig.BrokersString)

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN renders a libpq keyword/value connection string.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	pairs := []struct{ key, value string }{
		{"host", c.Host},
		{"port", fmt.Sprintf("%d", c.Port)},
		{"user", c.User},
		{"password", c.Password},
		{"dbname", c.DataBase},
		{"sslmode", c.SSLMode},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		parts = append(parts, p.key+"="+quoteDSNValue(p.value))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// String masks credentials so the config can be logged at startup.
func (c Config) String() string {
	db := "url=***"
	if c.DBConfig.URL == "" {
		db = fmt.Sprintf("host=%s port=%d db=%s user=%s password=*** sslmode=%s",
			c.DBConfig.Host, c.DBConfig.Port, c.DBConfig.DataBase, c.DBConfig.User, c.DBConfig.SSLMode)
	}
	return fmt.Sprintf("Config{App: %s v%s port=%d env=%s, DB: %s, Kafka: brokers=%v topic=%s}",
		c.AppConfig.APPName, c.AppConfig.Version, c.AppConfig.Port, c.AppConfig.Env,
		db, c.KafkaConfig.Brokers, c.KafkaConfig.Topic)
}
