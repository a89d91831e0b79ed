package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CameraBackend string `yaml:"camera_backend"` // "fake" or "dir"
	CameraPath    string `yaml:"camera_path"`    // frame directory for the dir backend

	VisionBackend string `yaml:"vision_backend"` // "", "ollama" or "claude"
	OllamaHost    string `yaml:"ollama_host"`
	OllamaModel   string `yaml:"ollama_model"`
	ClaudeAPIKey  string `yaml:"claude_api_key"`
	ClaudeModel   string `yaml:"claude_model"`

	ArchivePath string `yaml:"archive_path"` // empty = session-only, nothing saved
	ExportPath  string `yaml:"export_path"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	DemoSeed bool `yaml:"demo_seed"`
}

func defaults() *Config {
	return &Config{
		CameraBackend: "fake",
		VisionBackend: "",
		OllamaHost:    "http://localhost:11434",
		OllamaModel:   "moondream",
		ClaudeModel:   "claude-sonnet-4-5",
		ExportPath:    "./photos",
		LogLevel:      "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// the environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.CameraBackend, "CAMERA_BACKEND")
	setEnv(&cfg.CameraPath, "CAMERA_PATH")
	setEnv(&cfg.VisionBackend, "VISION_BACKEND")
	setEnv(&cfg.OllamaHost, "OLLAMA_HOST")
	setEnv(&cfg.OllamaModel, "OLLAMA_MODEL")
	setEnv(&cfg.ClaudeAPIKey, "CLAUDE_API_KEY")
	setEnv(&cfg.ClaudeModel, "CLAUDE_MODEL")
	setEnv(&cfg.ArchivePath, "ARCHIVE_PATH")
	setEnv(&cfg.ExportPath, "EXPORT_PATH")
	setEnv(&cfg.LogLevel, "LOG_LEVEL")
	setEnv(&cfg.LogFile, "LOG_FILE")

	if val, exists := os.LookupEnv("DEMO_SEED"); exists {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.DemoSeed = b
		}
	}
}

func setEnv(field *string, key string) {
	if val, exists := os.LookupEnv(key); exists {
		*field = val
	}
}
