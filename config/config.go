package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ScenarioCodeSE is the key of the routing scenario used for accessibility
// and routing.
const ScenarioCodeSE = "SE"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	TransitionBaseURL  string
	TransitionAPIToken string
	RoutingScenarios   map[string]string
	RequestTimeout     time.Duration
	RoutingTimeout     time.Duration
	RequestsPerSecond  float64
	RequestBurst       int

	AccessibilityMaxMinutes int
	DepartureTime           string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	HouseholdInputPath string
	CSVOutputPath      string
	JSONOutputPath     string
	ShapefileOutputDir string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	scenarios := map[string]string{}
	if se := getEnv("TR_ROUTING_SCENARIO_SE", ""); se != "" {
		scenarios[ScenarioCodeSE] = se
	}

	return &Config{
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "relocation"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "relocation"),
		PostgresDB:       getEnv("POSTGRES_DB", "relocation_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		TransitionBaseURL:  getEnv("TRANSITION_BASE_URL", "http://localhost:8080"),
		TransitionAPIToken: getEnv("TRANSITION_API_TOKEN", ""),
		RoutingScenarios:   scenarios,
		RequestTimeout:     time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		RoutingTimeout:     time.Duration(getEnvInt("ROUTING_TIMEOUT_MS", 120000)) * time.Millisecond,
		RequestsPerSecond:  getEnvFloat("REQUESTS_PER_SECOND", 5),
		RequestBurst:       getEnvInt("REQUEST_BURST", 10),

		AccessibilityMaxMinutes: getEnvInt("ACCESSIBILITY_MAX_MINUTES", 30),
		DepartureTime:           getEnv("DEPARTURE_TIME", "08:00"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		HouseholdInputPath: getEnv("HOUSEHOLD_INPUT_PATH", "./household.json"),
		CSVOutputPath:      getEnv("CSV_OUTPUT_PATH", "./output/address_costs.csv"),
		JSONOutputPath:     getEnv("JSON_OUTPUT_PATH", "./output/household_evaluated.json"),
		ShapefileOutputDir: getEnv("SHAPEFILE_OUTPUT_DIR", ""),
	}
}

// Scenario returns the routing scenario configured for code, or "" if none.
func (c *Config) Scenario(code string) string {
	return c.RoutingScenarios[code]
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// DepartureSeconds returns DepartureTime ("HH:MM") as seconds since midnight.
// An unparsable value falls back to 8:00.
func (c *Config) DepartureSeconds() int {
	const fallback = 8 * 3600
	hours, minutes, ok := strings.Cut(c.DepartureTime, ":")
	if !ok {
		return fallback
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 47 {
		return fallback
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return fallback
	}
	return h*3600 + m*60
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
