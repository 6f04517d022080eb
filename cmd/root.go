package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-advisor/internal/ai"
	"github.com/spigell/career-advisor/internal/ai/gemini"
	"github.com/spigell/career-advisor/internal/analysis"
	"github.com/spigell/career-advisor/internal/catalog"
	"github.com/spigell/career-advisor/internal/document"
	"github.com/spigell/career-advisor/internal/guidance"
	"github.com/spigell/career-advisor/internal/logger"
	"github.com/spigell/career-advisor/internal/secrets"
	"github.com/spigell/career-advisor/internal/store/memory"
	"github.com/spigell/career-advisor/internal/store/postgres"
)

const (
	app       = "career-advisor"
	envPrefix = "CAREER_ADVISOR"

	storeMemory    = "memory"
	storePostgres  = "postgres"
	providerStatic = "static"
	providerGemini = "gemini"
)

type Config struct {
	Catalog  map[string]any     `mapstructure:"-"`
	Store    *StoreConfig       `mapstructure:"store"`
	Server   *ServerConfig      `mapstructure:"server"`
	Guidance *GuidanceConfig    `mapstructure:"guidance"`
	S3       *document.S3Config `mapstructure:"s3"`
}

type StoreConfig struct {
	Driver          string `mapstructure:"driver"`
	DatabaseURL     string `mapstructure:"database-url"`
	DatabaseURLFile string `mapstructure:"database-url-file"`
	MaxEntries      int    `mapstructure:"max-entries"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type GuidanceConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-advisor extracts resume details and recommends careers, skill gaps and courses",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-advisor.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// envKeys are bound explicitly so Unmarshal sees values set only through the environment.
var envKeys = []string{
	"store.driver",
	"store.database-url",
	"store.database-url-file",
	"store.max-entries",
	"server.addr",
	"guidance.provider",
	"guidance.gemini.api-key",
	"guidance.gemini.api-key-file",
	"guidance.gemini.model",
	"guidance.gemini.max-retries",
	"guidance.gemini.max-log-length",
	"s3.region",
	"s3.bucket",
	"s3.endpoint",
	"s3.access-key",
	"s3.secret-key",
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// catalogSection holds the raw catalog section. It is read apart from the main
// config because alias and course keys may contain dots (node.js, .net).
var catalogSection map[string]any

func initConfig() {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	setupViper()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Defaults apply without a config file, but a broken or explicitly requested one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
		return
	}

	section, err := readCatalogSection(viper.ConfigFileUsed())
	if err != nil {
		log.Fatal(err)
	}
	catalogSection = section
}

func setupViper() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	for _, key := range envKeys {
		env := envPrefix + "_" + strings.ToUpper(envKeyReplacer.Replace(key))
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("store.driver", storeMemory)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("guidance.provider", providerStatic)
}

func readCatalogSection(path string) (map[string]any, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog section: %w", err)
	}

	raw := v.Get("catalog")
	if raw == nil {
		return nil, nil
	}

	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("catalog section must be a mapping, got %T", raw)
	}
	return section, nil
}

func getConfig() (*Config, error) {
	config := &Config{
		Store:    &StoreConfig{},
		Server:   &ServerConfig{},
		Guidance: &GuidanceConfig{},
		S3:       &document.S3Config{},
	}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	config.Catalog = catalogSection

	return config, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// newLogger builds the process logger from the persistent flags.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func newCatalog(config *Config) (*catalog.Catalog, error) {
	var raw any
	if config.Catalog != nil {
		raw = config.Catalog
	}

	catalogConfig, err := catalog.Decode(raw)
	if err != nil {
		return nil, err
	}

	return catalog.Build(catalogConfig)
}

// newStore returns the configured result store and a function releasing it.
func newStore(ctx context.Context, cfg *StoreConfig, logger *zap.Logger) (analysis.Store, func(), error) {
	driver := strings.ToLower(firstNonEmpty(cfg.Driver, storeMemory))

	switch driver {
	case storeMemory:
		logger.Debug("using in-memory result store", zap.Int("max_entries", cfg.MaxEntries))
		return memory.New(cfg.MaxEntries), func() {}, nil
	case storePostgres:
		databaseURL, err := secrets.Load(secrets.Source{
			Name:  "database url",
			Value: cfg.DatabaseURL,
			File:  cfg.DatabaseURLFile,
			Env:   "DATABASE_URL",
		})
		if err != nil {
			return nil, nil, err
		}

		store, err := postgres.Connect(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}

		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}

		logger.Info("connected to postgres result store")
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}

func newAdvisor(ctx context.Context, cfg *GuidanceConfig, logger *zap.Logger) (ai.Advisor, error) {
	static := guidance.NewStatic()

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", providerStatic:
		return static, nil
	case providerGemini:
	default:
		return nil, fmt.Errorf("unsupported guidance provider: %s", cfg.Provider)
	}

	geminiCfg := cfg.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set guidance.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("ai_provider", providerGemini),
		zap.Int("ai_retry_attempts", geminiCfg.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, static, logger, geminiCfg.MaxLogLength), nil
}

// newFetcher returns an S3 fetcher when a bucket or endpoint is configured.
func newFetcher(ctx context.Context, cfg *document.S3Config) (*document.S3Fetcher, error) {
	if cfg == nil || (cfg.Bucket == "" && cfg.Endpoint == "") {
		return nil, nil
	}
	return document.NewS3Fetcher(ctx, *cfg)
}
