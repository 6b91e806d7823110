package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug      bool    `yaml:"debug"`
	Limiter    Limiter `yaml:"limiter"`
	AppSecret  string  `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	Server     Server  `yaml:"server"`
	DB         DB      `yaml:"db"`
	Auth       Auth    `yaml:"auth"`
	Omdb       Omdb    `yaml:"omdb"`
	SMTPServer SMTP    `yaml:"smtp"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN" env-required:"true"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Auth struct {
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"720h"`
}

type Omdb struct {
	ApiKey  string        `yaml:"api_key" env:"OMDB_API_KEY" env-required:"true"`
	BaseURL string        `yaml:"base_url" env-default:"https://www.omdbapi.com/"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type SMTP struct {
	ApiURL       string `yaml:"api_url" env:"SMTP_API_URL" env-default:"https://send.api.mailtrap.io/api/send"`
	ApiToken     string `yaml:"api_token" env:"SMTP_API_TOKEN"`
	Sender       string `yaml:"sender" env-default:"CineLog <no-reply@cinelog.example>"`
	RetriesCount int    `yaml:"retries_count" env-default:"3"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}

	return &cfg
}
