// Package config loads the typed CLI configuration from ~/.iv/config.toml
// via viper, with IV_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/probelab/interview-cli/internal/domain"
	"github.com/spf13/viper"
)

const (
	configDirName = ".iv"
	configName    = "config"
	configType    = "toml"
)

type Config struct {
	Matrix    MatrixConfig
	Inference InferenceConfig
	Output    OutputConfig
	Server    ServerConfig
	LogFile   string
}

// MatrixConfig carries the notification-room credentials. All three fields
// are required before anything that posts to the room may run.
type MatrixConfig struct {
	Homeserver   string
	AccessToken  string
	RoomID       string
	InstanceName string
}

type InferenceConfig struct {
	BaseURL        string
	Temperature    float64
	MaxTokens      int
	RequestTimeout time.Duration
}

type OutputConfig struct {
	Dir string
}

// ServerConfig configures the local llama.cpp inference-server launch.
type ServerConfig struct {
	Command   string
	ModelPath string
	GPULayers int
	CtxSize   int
	Batch     int
	Threads   int
	Host      string
	Port      int
}

// Validate reports which required room credentials are absent.
func (m MatrixConfig) Validate() error {
	var missing []string
	if m.Homeserver == "" {
		missing = append(missing, "matrix.homeserver")
	}
	if m.AccessToken == "" {
		missing = append(missing, "matrix.access_token")
	}
	if m.RoomID == "" {
		missing = append(missing, "matrix.room_id")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfigurationMissing, strings.Join(missing, ", "))
	}

	return nil
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, configDirName)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("IV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("matrix.instance_name", "Interview Bot")
	v.SetDefault("inference.base_url", "http://localhost:1234")
	v.SetDefault("inference.temperature", 0.7)
	v.SetDefault("inference.max_tokens", 2000)
	v.SetDefault("inference.request_timeout_seconds", 90)
	v.SetDefault("output.dir", filepath.Join(configDir, "interviews"))
	v.SetDefault("log.file", filepath.Join(configDir, "logs", "iv.log"))
	v.SetDefault("server.gpu_layers", -1)
	v.SetDefault("server.ctx_size", 4096)
	v.SetDefault("server.batch", 512)
	v.SetDefault("server.threads", 8)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Config{
		Matrix: MatrixConfig{
			Homeserver:   v.GetString("matrix.homeserver"),
			AccessToken:  v.GetString("matrix.access_token"),
			RoomID:       v.GetString("matrix.room_id"),
			InstanceName: v.GetString("matrix.instance_name"),
		},
		Inference: InferenceConfig{
			BaseURL:        v.GetString("inference.base_url"),
			Temperature:    v.GetFloat64("inference.temperature"),
			MaxTokens:      v.GetInt("inference.max_tokens"),
			RequestTimeout: time.Duration(v.GetInt("inference.request_timeout_seconds")) * time.Second,
		},
		Output: OutputConfig{
			Dir: v.GetString("output.dir"),
		},
		Server: ServerConfig{
			Command:   v.GetString("server.command"),
			ModelPath: v.GetString("server.model_path"),
			GPULayers: v.GetInt("server.gpu_layers"),
			CtxSize:   v.GetInt("server.ctx_size"),
			Batch:     v.GetInt("server.batch"),
			Threads:   v.GetInt("server.threads"),
			Host:      v.GetString("server.host"),
			Port:      v.GetInt("server.port"),
		},
		LogFile: v.GetString("log.file"),
	}, nil
}
