package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DevelopmentAPIURL is the lead-intake API used outside production
	DevelopmentAPIURL = "http://localhost:42000"
	// ProductionAPIURL is the lead-intake API used in production
	ProductionAPIURL = "https://api.morningful.ai"

	DefaultSubmitTimeout  = 10 * time.Second
	DefaultAutoCloseDelay = 3 * time.Second
	DefaultTypingDelay    = 1 * time.Second
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// Lead-intake API
	LeadAPIURL     string
	SubmitTimeout  time.Duration
	AutoCloseDelay time.Duration
	TypingDelay    time.Duration
	SessionTTL     time.Duration
	// Analytics
	GAMeasurementID          string
	GAAPISecret              string
	MixpanelToken            string
	MixpanelBlockedCountries []string
	// Email (Resend)
	ResendAPIKey     string
	EmailFrom        string
	EmailFromName    string
	EmailTestMode    bool // When true, emails are logged to console instead of sent
	SalesNotifyEmail string
	// Cloudflare Turnstile
	TurnstileSiteKey   string
	TurnstileSecretKey string
	// Other
	AllowedOrigins    []string
	AppURL            string
	ChatbotScriptPath string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")

	return &Config{
		ServerPort:               getEnv("SERVER_PORT", "8080"),
		DBPath:                   getEnv("DB_PATH", "db/app.db"),
		Environment:              environment,
		LeadAPIURL:               getEnv("LEAD_API_URL", DefaultLeadAPIURL(environment)),
		SubmitTimeout:            getEnvDuration("SUBMIT_TIMEOUT", DefaultSubmitTimeout),
		AutoCloseDelay:           getEnvDuration("AUTO_CLOSE_DELAY", DefaultAutoCloseDelay),
		TypingDelay:              getEnvDuration("TYPING_DELAY", DefaultTypingDelay),
		SessionTTL:               getEnvDuration("SESSION_TTL", 30*time.Minute),
		GAMeasurementID:          getEnv("GA_MEASUREMENT_ID", "G-8DY1F31TH3"),
		GAAPISecret:              getEnv("GA_API_SECRET", ""),
		MixpanelToken:            getEnv("MIXPANEL_TOKEN", ""),
		MixpanelBlockedCountries: splitList(getEnv("MIXPANEL_BLOCKED_COUNTRIES", "MK,IL")),
		ResendAPIKey:             getEnv("RESEND_API_KEY", ""),
		EmailFrom:                getEnv("EMAIL_FROM", "hello@morningful.ai"),
		EmailFromName:            getEnv("EMAIL_FROM_NAME", "Morningful AI"),
		EmailTestMode:            getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		SalesNotifyEmail:         getEnv("SALES_NOTIFY_EMAIL", ""),
		TurnstileSiteKey:         getEnv("TURNSTILE_SITE_KEY", ""),
		TurnstileSecretKey:       getEnv("TURNSTILE_SECRET_KEY", ""),
		AllowedOrigins:           splitList(getEnv("ALLOWED_ORIGINS", "*")),
		AppURL:                   getEnv("APP_URL", "http://localhost:8080"),
		ChatbotScriptPath:        getEnv("CHATBOT_SCRIPT_PATH", ""),
	}
}

// DefaultLeadAPIURL resolves the lead-intake base URL for an environment
func DefaultLeadAPIURL(environment string) string {
	if environment == "production" {
		return ProductionAPIURL
	}
	return DevelopmentAPIURL
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
