package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	CORS    CORSConfig
	LLM     LLMConfig
	Redis   RedisConfig
	Storage StorageConfig
	QuizGen QuizGenConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Env   string
	Level string
}

type CORSConfig struct {
	AllowOrigins []string
}

// LLMConfig selects and configures the text-generation backend.
// Source is "openai" or "ollama".
type LLMConfig struct {
	Source string
	OpenAI OpenAIConfig
	Ollama OllamaConfig
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type OllamaConfig struct {
	ServerURL string
	Model     string
	Timeout   time.Duration
}

// RedisConfig is optional; an empty Address disables response caching.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type StorageConfig struct {
	DataDir string
	FontDir string
}

// QuizGenConfig holds the duplicate-aware generation knobs. They are
// passed into the quiz service at construction so tests can run with a
// different threshold without touching globals.
type QuizGenConfig struct {
	DuplicateThreshold float64
	MaxTriesPerBatch   int
	ContextCharLimit   int
	ExcludeHintLimit   int
	MaxQuestionCount   int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("server.body_limit_mb", 25)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("llm.source", "openai")
	viper.SetDefault("llm.openai.model", "gpt-4o-mini")
	viper.SetDefault("llm.openai.timeout", 90)
	viper.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	viper.SetDefault("llm.ollama.model", "qwen3:0.6b")
	viper.SetDefault("llm.ollama.timeout", 120)
	viper.SetDefault("redis.ttl", 3600)
	viper.SetDefault("storage.data_dir", "./data")
	viper.SetDefault("storage.font_dir", "./fonts")
	viper.SetDefault("quizgen.duplicate_threshold", 0.78)
	viper.SetDefault("quizgen.max_tries_per_batch", 4)
	viper.SetDefault("quizgen.context_char_limit", 15000)
	viper.SetDefault("quizgen.exclude_hint_limit", 30)
	viper.SetDefault("quizgen.max_question_count", 10)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover everything
		// except the OpenAI key.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit_mb") * 1024 * 1024,
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		CORS: CORSConfig{
			AllowOrigins: viper.GetStringSlice("cors.allow_origins"),
		},
		LLM: LLMConfig{
			Source: viper.GetString("llm.source"),
			OpenAI: OpenAIConfig{
				APIKey:  viper.GetString("llm.openai.api_key"),
				Model:   viper.GetString("llm.openai.model"),
				Timeout: viper.GetDuration("llm.openai.timeout") * time.Second,
			},
			Ollama: OllamaConfig{
				ServerURL: viper.GetString("llm.ollama.server_url"),
				Model:     viper.GetString("llm.ollama.model"),
				Timeout:   viper.GetDuration("llm.ollama.timeout") * time.Second,
			},
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			TTL:      viper.GetDuration("redis.ttl") * time.Second,
		},
		Storage: StorageConfig{
			DataDir: viper.GetString("storage.data_dir"),
			FontDir: viper.GetString("storage.font_dir"),
		},
		QuizGen: QuizGenConfig{
			DuplicateThreshold: viper.GetFloat64("quizgen.duplicate_threshold"),
			MaxTriesPerBatch:   viper.GetInt("quizgen.max_tries_per_batch"),
			ContextCharLimit:   viper.GetInt("quizgen.context_char_limit"),
			ExcludeHintLimit:   viper.GetInt("quizgen.exclude_hint_limit"),
			MaxQuestionCount:   viper.GetInt("quizgen.max_question_count"),
		},
	}

	// Environment overrides for values that usually come from the
	// deployment environment rather than the YAML file.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.OpenAI.APIKey = key
	}
	if src := os.Getenv("LLM_SOURCE"); src != "" {
		config.LLM.Source = src
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		config.Redis.Address = addr
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		config.Redis.Password = pw
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		config.Storage.DataDir = dir
	}
	if origins := os.Getenv("FRONTEND_ORIGINS"); origins != "" {
		var allowed []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowed = append(allowed, o)
			}
		}
		config.CORS.AllowOrigins = allowed
	}

	if config.LLM.Source == "openai" && config.LLM.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is missing")
	}

	return config, nil
}
