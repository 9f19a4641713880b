package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// Payment tokenization provider
	PaymentSecretKey string
	PaymentBaseURL   string

	// Transactional mail provider
	MailerAPIKey   string
	MailerBaseURL  string
	MailerFromAddr string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		PaymentSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentBaseURL:   os.Getenv("PAYMENT_BASE_URL"),

		MailerAPIKey:   os.Getenv("MAILER_API_KEY"),
		MailerBaseURL:  os.Getenv("MAILER_BASE_URL"),
		MailerFromAddr: os.Getenv("MAILER_FROM_ADDR"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "5000"
	}

	return cfg
}
