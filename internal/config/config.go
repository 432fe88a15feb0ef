package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	NotificationsRabbitMQ = "rabbitmq"
	NotificationsLog      = "log"
)

type Config struct {
	Env           string `yaml:"env" env:"ENV" env-default:"local"`
	Tokens        `yaml:"tokens"`
	Accounts      `yaml:"accounts"`
	Storage       `yaml:"storage"`
	Postgres      `yaml:"postgres"`
	RabbitMQ      `yaml:"rabbitmq"`
	Notifications `yaml:"notifications"`
	HTTPServer    `yaml:"http_server"`
}

type HTTPServer struct {
	Address            string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:3000"`
	Timeout            time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" env-default:"60s"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type Tokens struct {
	SessionSecret string        `yaml:"session_secret" env:"JWT_SECRET" env-required:"true"`
	SessionTTL    time.Duration `yaml:"session_ttl" env-default:"2h"`
	ResetTTL      time.Duration `yaml:"reset_ttl" env-default:"1h"`
}

type Accounts struct {
	PasswordCost        int  `yaml:"password_cost" env-default:"10"`
	ConcealUnknownEmail bool `yaml:"conceal_unknown_email" env-default:"false"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"postgres"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env:"RABBITMQ_URL"`
	QueueName string `yaml:"queue_name" env-default:"notifications"`
}

type Notifications struct {
	Driver string `yaml:"driver" env:"NOTIFICATIONS_DRIVER" env-default:"rabbitmq"`

	// ResetPageURL is the client page linked from reset e-mails.
	ResetPageURL string `yaml:"reset_page_url" env:"RESET_PAGE_URL"`
}

// MailerConfig is read by the mail_sender binary.
type MailerConfig struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	RabbitMQ `yaml:"rabbitmq"`
	SMTP     `yaml:"smtp"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-required:"true"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM" env-required:"true"`
}

func MustLoad() *Config {
	var cfg Config

	mustRead(fetchConfigPath(), &cfg)

	return &cfg
}

func MustLoadMailer() *MailerConfig {
	var cfg MailerConfig

	mustRead(fetchConfigPath(), &cfg)

	return &cfg
}

// Load reads the config at path without panicking.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func mustRead(configPath string, cfg any) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("Config file does not exist: " + configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		panic("Failed to read config: " + err.Error())
	}
}

// fetchConfigPath resolves the config path: -config flag > CONFIG_PATH > default.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "./config/config.yaml"
	}

	return res
}
