package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrega as configurações da aplicação lidas do ambiente
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	Location *time.Location

	LLM LLMConfig

	GoogleAccessToken string
	GoogleTokenFile   string

	// DatabaseURL vazio desativa o histórico em Postgres
	DatabaseURL    string
	MigrationsPath string

	JWTSecretKey       string
	JWTExpirationHours int

	CORSAllowedOrigins []string

	ResolverCacheSize int
	ResolverCacheTTL  time.Duration

	HTTPClientTimeout time.Duration
}

// LLMConfig configura o serviço de NLU
type LLMConfig struct {
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	Timeout         time.Duration
}

// Load lê a configuração das variáveis de ambiente
func Load() (*Config, error) {
	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	nluTimeout, err := getDuration("NLU_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getDuration("RESOLVER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	clientTimeout, err := getDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Location: loc,
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", "anthropic")),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:         nluTimeout,
		},
		GoogleAccessToken:  os.Getenv("GOOGLE_ACCESS_TOKEN"),
		GoogleTokenFile:    os.Getenv("GOOGLE_TOKEN_FILE"),
		DatabaseURL:        databaseURL(),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "migrations"),
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: getInt("JWT_EXPIRATION_HOURS", 24),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ResolverCacheSize:  getInt("RESOLVER_CACHE_SIZE", 256),
		ResolverCacheTTL:   cacheTTL,
		HTTPClientTimeout:  clientTimeout,
	}

	return cfg, nil
}

// databaseURL usa DATABASE_URL ou monta a URL a partir das variáveis DB_*.
// Sem DB_HOST configurado o histórico fica em memória.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		host,
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "connector_agent"),
		getEnv("DB_SSL_MODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
