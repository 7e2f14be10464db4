// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env"`
	StorageConnectionString string        `yaml:"storage_connection_string"`
	RabbitMQURL             string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries      int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay      time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Paystack                `yaml:"paystack"`
	IdentityProvider        `yaml:"identity_provider"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Paystack настройки платёжного шлюза. SecretKey используется и для
// bearer-авторизации исходящих запросов, и для проверки подписи вебхуков.
type Paystack struct {
	SecretKey string `yaml:"secret_key" env:"PAYSTACK_SECRET_KEY"`
	BaseURL   string `yaml:"base_url" env-default:"https://api.paystack.co"`
	Currency  string `yaml:"currency" env-default:"GHS"`
}

// IdentityProvider настройки внешнего identity-провайдера: адрес admin API,
// сервисный ключ и секрет для локальной проверки access-токенов.
type IdentityProvider struct {
	BaseURL    string        `yaml:"base_url"`
	ServiceKey string        `yaml:"service_key" env:"IDENTITY_SERVICE_KEY"`
	JWTSecret  string        `yaml:"jwt_secret" env:"IDENTITY_JWT_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// SMTP настройки почтового транспорта сервиса уведомлений
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
