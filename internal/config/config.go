package config

import (
	"errors"
	"io/fs"
	"reflect"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Environment     string   `mapstructure:"ENVIRONMENT"`
	Version         string   `mapstructure:"VERSION"`
	SiteURL         string   `mapstructure:"SITE_URL"`
	TrustedOrigins  []string `mapstructure:"TRUSTED_ORIGINS"`
	SimulateLatency bool     `mapstructure:"SIMULATE_LATENCY"`
	TLSCertFile     string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile      string   `mapstructure:"TLS_KEY_FILE"`

	Store    StoreConfig    `mapstructure:",squash"`
	DB       DBConfig       `mapstructure:",squash"`
	RabbitMQ RabbitMQConfig `mapstructure:",squash"`
	Mail     MailConfig     `mapstructure:",squash"`
}

type StoreConfig struct {
	// Backend is one of memory, sqlite or postgres.
	Backend    string `mapstructure:"STORE_BACKEND"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
}

type DBConfig struct {
	Host       string `mapstructure:"POSTGRES_HOST"`
	Port       string `mapstructure:"POSTGRES_PORT"`
	User       string `mapstructure:"POSTGRES_USER"`
	Password   string `mapstructure:"POSTGRES_PASSWORD"`
	Name       string `mapstructure:"POSTGRES_DB"`
	Migrations string `mapstructure:"MIGRATIONS_PATH"`
}

// RabbitMQConfig is optional; an empty host disables blog events.
type RabbitMQConfig struct {
	Host     string `mapstructure:"RABBITMQ_HOST"`
	Port     string `mapstructure:"RABBITMQ_PORT"`
	User     string `mapstructure:"RABBITMQ_USER"`
	Password string `mapstructure:"RABBITMQ_PASSWORD"`
}

// MailConfig is optional; an empty host or no recipients disables mail.
type MailConfig struct {
	Host       string   `mapstructure:"MAIL_HOST"`
	Port       int      `mapstructure:"MAIL_PORT"`
	User       string   `mapstructure:"MAIL_USER"`
	Password   string   `mapstructure:"MAIL_PASSWORD"`
	Sender     string   `mapstructure:"MAIL_SENDER"`
	Recipients []string `mapstructure:"NOTIFY_RECIPIENTS"`
}

func (c RabbitMQConfig) Enabled() bool {
	return c.Host != ""
}

func (c MailConfig) Enabled() bool {
	return c.Host != "" && len(c.Recipients) > 0
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", ":4000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("VERSION", "dev")
	v.SetDefault("SITE_URL", "http://localhost:4000")
	v.SetDefault("SIMULATE_LATENCY", true)
	v.SetDefault("STORE_BACKEND", "sqlite")
	v.SetDefault("SQLITE_PATH", "data/blogshelf.db")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RABBITMQ_PORT", "5672")
	v.SetDefault("MAIL_PORT", 587)
}

// bindEnv registers every mapstructure key of t with viper. AutomaticEnv
// alone only resolves keys viper already knows from a default or the file.
func bindEnv(v *viper.Viper, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		switch tag := f.Tag.Get("mapstructure"); tag {
		case "":
		case ",squash":
			bindEnv(v, f.Type)
		default:
			v.BindEnv(tag)
		}
	}
}

// Load reads the env file at path. A missing file leaves the defaults and
// the process environment in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v, reflect.TypeOf(Config{}))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
