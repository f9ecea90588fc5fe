package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBDriver string
	DBName   string
	JWTKey   string

	SMSLocalMode    bool   // when true, OTPs are only logged, never transmitted
	LocalTextApi    string // SMS gateway API key
	LocalTextApiUrl string // SMS gateway URL

	EmailEnabled bool
	EmailSender  string
	Password     string // SMTP Password

	ResendCountdownSec int // OTP resend countdown ticks
	DisbursalDwellSec  int // dwell before a disbursed loan is shown as serviced

	ReminderCronEnabled bool
	ReminderCronSpec    string

	UploadDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:     getEnv("PORT", "3000"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBName:   getEnv("DB_NAME", "lendUser.db"),
		JWTKey:   getEnv("JWT_SECRET_KEY", "defaultSecret"),

		SMSLocalMode:    getEnvBool("SMS_LOCAL_MODE", true),
		LocalTextApi:    getEnv("LOCAL_SMS_API_KEY", "defaultSecret"),
		LocalTextApiUrl: getEnv("LOCAL_SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),

		EmailEnabled: getEnvBool("EMAIL_ENABLED", false),
		EmailSender:  getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:     getEnv("PASSWORD", "defaultSecret"),

		ResendCountdownSec: getEnvInt("OTP_RESEND_COUNTDOWN", 30),
		DisbursalDwellSec:  getEnvInt("DISBURSAL_DWELL_SECONDS", 5),

		ReminderCronEnabled: getEnvBool("EMI_REMINDER_ENABLED", false),
		ReminderCronSpec:    getEnv("EMI_REMINDER_CRON", "0 9 * * *"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DBName == "lendUser.db" {
		log.Println("Warning: Using default DBName. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
