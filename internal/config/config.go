package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Auth     AuthConfig
	Logger   LoggerConfig
	CacheTTL CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LLMConfig holds settings for both text-generation backends. Which backend
// is used is decided once at startup from Env ("production" selects OpenAI,
// anything else selects Google AI).
type LLMConfig struct {
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`
	GoogleAPIKey string `yaml:"google_api_key"`
	GoogleModel  string `yaml:"google_model"`
	Temperature  float64
	Timeout      time.Duration
}

type AuthConfig struct {
	// JWTSecret is shared with the external auth provider that issues tokens.
	JWTSecret string `yaml:"jwt_secret"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

type CacheTTLConfig struct {
	GeneratedQuiz time.Duration
}

const (
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultGoogleModel     = "gemini-1.5-flash"
	DefaultLLMTimeout      = 60 * time.Second
	DefaultLLMTemperature  = 0.7
	DefaultQuizCacheTTL    = 24 * time.Hour
	DefaultServerPort      = 8000
	DefaultRWTimeout       = 20 * time.Second
)

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("env", "development")
	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("server.read_timeout", int(DefaultRWTimeout.Seconds()))
	viper.SetDefault("server.write_timeout", int(DefaultRWTimeout.Seconds()))
	viper.SetDefault("db.ssl_mode", "require")
	viper.SetDefault("llm.openai_model", DefaultOpenAIModel)
	viper.SetDefault("llm.google_model", DefaultGoogleModel)
	viper.SetDefault("llm.temperature", DefaultLLMTemperature)
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("cache.generated_quiz_ttl", 24)

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional when everything comes from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Env: viper.GetString("env"),
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.ssl_mode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			OpenAIAPIKey: viper.GetString("llm.openai_api_key"),
			OpenAIModel:  viper.GetString("llm.openai_model"),
			GoogleAPIKey: viper.GetString("llm.google_api_key"),
			GoogleModel:  viper.GetString("llm.google_model"),
			Temperature:  viper.GetFloat64("llm.temperature"),
			Timeout:      viper.GetDuration("llm.timeout") * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
		},
		CacheTTL: CacheTTLConfig{
			GeneratedQuiz: viper.GetDuration("cache.generated_quiz_ttl") * time.Hour,
		},
	}

	// Override with environment variables if set
	if env := os.Getenv("ENV"); env != "" {
		config.Env = env
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.LLM.OpenAIAPIKey = openAIKey
	}
	if googleKey := os.Getenv("GOOGLE_API_KEY"); googleKey != "" {
		config.LLM.GoogleAPIKey = googleKey
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.Auth.JWTSecret = jwtSecret
	}

	if config.LLM.Timeout <= 0 {
		config.LLM.Timeout = DefaultLLMTimeout
	}
	if config.CacheTTL.GeneratedQuiz <= 0 {
		config.CacheTTL.GeneratedQuiz = DefaultQuizCacheTTL
	}

	return config, nil
}

// IsProduction reports whether the process runs with the production profile.
// Provider selection and log encoding both key off this.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
