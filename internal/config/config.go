package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/recon/internal/core/model"
	"github.com/agenthands/recon/internal/logging"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Prompts struct {
	// Scoring is a format string with one %s for the candidate's feature list.
	Scoring string `toml:"scoring"`
}

type ConcurrencyConfig struct {
	// Workers bounds the goroutines matching source records; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
}

// ClusteringConfig picks how matched records are grouped. Detector is "lpa"
// (the default) or "components".
type ClusteringConfig struct {
	Detector      string `toml:"detector"`
	MaxIterations int    `toml:"max_iterations"`
}

// AlgorithmConfig registers an extra named algorithm at start-up.
type AlgorithmConfig struct {
	Name      string   `toml:"name"`
	Kind      string   `toml:"kind"`
	Threshold *float64 `toml:"threshold"`
}

type TrainingExample struct {
	Features map[string]float64 `toml:"features"`
	Label    float64            `toml:"label"`
}

// ModelConfig registers a scorer at start-up. Kind is "logistic" or "llm".
type ModelConfig struct {
	Name         string             `toml:"name"`
	Kind         string             `toml:"kind"`
	Weights      map[string]float64 `toml:"weights"`
	Bias         float64            `toml:"bias"`
	Examples     []TrainingExample  `toml:"examples"`
	Epochs       int                `toml:"epochs"`
	LearningRate float64            `toml:"learning_rate"`
}

type Config struct {
	Server      ServerConfig               `toml:"server"`
	LLM         LLMConfig                  `toml:"llm"`
	Memgraph    MemgraphConfig             `toml:"memgraph"`
	Prompts     Prompts                    `toml:"prompts"`
	Concurrency ConcurrencyConfig          `toml:"concurrency"`
	Clustering  ClusteringConfig           `toml:"clustering"`
	Logging     logging.Config             `toml:"logging"`
	Matching    model.ReconciliationConfig `toml:"matching"`
	Algorithms  []AlgorithmConfig          `toml:"algorithms"`
	Models      []ModelConfig              `toml:"models"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Logging: logging.Config{Level: "info", Format: "console", Output: "stderr"},
		Matching: model.ReconciliationConfig{
			MinConfidenceThreshold: 0.7,
			MaxMatchesPerRecord:    1,
		},
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides file values with environment variables when they are set.
func (c *Config) ApplyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")

	if v := os.Getenv("RECON_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency.Workers = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
