package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ModeDatabase = "database"
	ModeFile     = "file"
	ModeMemory   = "in-memory"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress   string
	GRPCAddress     string
	DatabaseDSN     string
	FileStoragePath string
	EnableHTTPS     bool
	TLSCertPath     string
	TLSKeyPath      string

	JWTSecret      string
	JWTPublicKey   string
	JWTIssuer      string
	ShortcutAPIKey string

	AnthropicAPIKey    string
	AnthropicBaseURL   string
	AnthropicModel     string
	AnthropicMaxTokens int

	AutoCategorize      bool
	CategorizeTimeout   time.Duration
	CategorizeWorkers   int
	CategorizeQueueSize int

	MetadataTimeout   time.Duration
	MetadataCachePath string
	MetadataCacheTTL  time.Duration

	LogLevel string
	Mode     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	v.SetDefault("GRPC_ADDRESS", "")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("FILE_STORAGE_PATH", "")
	v.SetDefault("ENABLE_HTTPS", false)
	v.SetDefault("TLS_CERT_PATH", "cert.pem")
	v.SetDefault("TLS_KEY_PATH", "key.pem")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_JWT_PUBLIC_KEY", "")
	v.SetDefault("AUTH_JWT_ISSUER", "")
	v.SetDefault("SHORTCUT_API_KEY", "")
	v.SetDefault("ANTHROPIC_API_KEY", "")
	v.SetDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("ANTHROPIC_MAX_TOKENS", 100)
	v.SetDefault("AUTO_CATEGORIZE", false)
	v.SetDefault("CATEGORIZE_TIMEOUT", 20*time.Second)
	v.SetDefault("CATEGORIZE_WORKERS", 4)
	v.SetDefault("CATEGORIZE_QUEUE_SIZE", 256)
	v.SetDefault("METADATA_TIMEOUT", 10*time.Second)
	v.SetDefault("METADATA_CACHE_PATH", "")
	v.SetDefault("METADATA_CACHE_TTL", 24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
}

// NewConfig собирает конфигурацию. Приоритет: флаги > окружение > .env > JSON-файл > значения по умолчанию.
func NewConfig(args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	fs := flag.NewFlagSet("linkbucket", flag.ContinueOnError)
	serverAddress := fs.String("a", "", "server address")
	databaseDSN := fs.String("d", "", "PostgreSQL DSN")
	fileStoragePath := fs.String("f", "", "file storage path (JSON file)")
	grpcAddress := fs.String("g", "", "gRPC health server address")
	enableHTTPS := fs.Bool("s", false, "enable HTTPS")
	tlsCertPath := fs.String("cert", "", "path to TLS certificate")
	tlsKeyPath := fs.String("key", "", "path to TLS key")
	configPath := fs.String("c", "", "path to JSON config file")
	fs.StringVar(configPath, "config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Загружаем JSON-конфигурацию (если указана): её значения ниже окружения
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG")
	}
	if *configPath != "" {
		if err := loadJSON(v, *configPath); err != nil {
			return nil, err
		}
	}

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // Ошибку игнорируем, если файла нет

	// Флаги имеют высший приоритет
	setIf := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setIf("SERVER_ADDRESS", *serverAddress)
	setIf("DATABASE_DSN", *databaseDSN)
	setIf("FILE_STORAGE_PATH", *fileStoragePath)
	setIf("GRPC_ADDRESS", *grpcAddress)
	setIf("TLS_CERT_PATH", *tlsCertPath)
	setIf("TLS_KEY_PATH", *tlsKeyPath)
	if *enableHTTPS {
		v.Set("ENABLE_HTTPS", true)
	}

	cfg := &Config{
		ServerAddress:   v.GetString("SERVER_ADDRESS"),
		GRPCAddress:     v.GetString("GRPC_ADDRESS"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		FileStoragePath: v.GetString("FILE_STORAGE_PATH"),
		EnableHTTPS:     v.GetBool("ENABLE_HTTPS"),
		TLSCertPath:     v.GetString("TLS_CERT_PATH"),
		TLSKeyPath:      v.GetString("TLS_KEY_PATH"),

		JWTSecret:      v.GetString("AUTH_JWT_SECRET"),
		JWTPublicKey:   v.GetString("AUTH_JWT_PUBLIC_KEY"),
		JWTIssuer:      v.GetString("AUTH_JWT_ISSUER"),
		ShortcutAPIKey: v.GetString("SHORTCUT_API_KEY"),

		AnthropicAPIKey:    v.GetString("ANTHROPIC_API_KEY"),
		AnthropicBaseURL:   v.GetString("ANTHROPIC_BASE_URL"),
		AnthropicModel:     v.GetString("ANTHROPIC_MODEL"),
		AnthropicMaxTokens: v.GetInt("ANTHROPIC_MAX_TOKENS"),

		AutoCategorize:      v.GetBool("AUTO_CATEGORIZE"),
		CategorizeTimeout:   v.GetDuration("CATEGORIZE_TIMEOUT"),
		CategorizeWorkers:   v.GetInt("CATEGORIZE_WORKERS"),
		CategorizeQueueSize: v.GetInt("CATEGORIZE_QUEUE_SIZE"),

		MetadataTimeout:   v.GetDuration("METADATA_TIMEOUT"),
		MetadataCachePath: v.GetString("METADATA_CACHE_PATH"),
		MetadataCacheTTL:  v.GetDuration("METADATA_CACHE_TTL"),

		LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	// Определяем режим работы
	switch {
	case cfg.DatabaseDSN != "":
		cfg.Mode = ModeDatabase
	case cfg.FileStoragePath != "":
		cfg.Mode = ModeFile
	default:
		cfg.Mode = ModeMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// loadJSON кладёт значения файла в слой значений по умолчанию. Ключи как у переменных окружения,
// регистр не важен: "server_address" и "SERVER_ADDRESS" равнозначны.
func loadJSON(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("не удалось прочитать JSON-файл конфигурации %q: %w", path, err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ошибка разбора JSON-файла конфигурации: %w", err)
	}
	for key, val := range raw {
		v.SetDefault(strings.ToUpper(key), val)
	}
	return nil
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return errors.New("адрес сервера не может быть пустым")
	}
	if cfg.JWTSecret == "" && cfg.JWTPublicKey == "" {
		return errors.New("нужен AUTH_JWT_SECRET или AUTH_JWT_PUBLIC_KEY")
	}
	if cfg.EnableHTTPS && (cfg.TLSCertPath == "" || cfg.TLSKeyPath == "") {
		return errors.New("для HTTPS нужны TLS_CERT_PATH и TLS_KEY_PATH")
	}
	if cfg.AnthropicMaxTokens <= 0 {
		return errors.New("ANTHROPIC_MAX_TOKENS должен быть положительным")
	}
	if cfg.CategorizeWorkers <= 0 || cfg.CategorizeQueueSize <= 0 {
		return errors.New("CATEGORIZE_WORKERS и CATEGORIZE_QUEUE_SIZE должны быть положительными")
	}
	if cfg.CategorizeTimeout <= 0 || cfg.MetadataTimeout <= 0 {
		return errors.New("таймауты должны быть положительными")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("неизвестный LOG_LEVEL %q", cfg.LogLevel)
	}
	return nil
}
