package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/probelab/interview-cli/internal/adapters/inference"
	"github.com/probelab/interview-cli/internal/adapters/matrix"
	tomlrepo "github.com/probelab/interview-cli/internal/adapters/repo/toml"
	"github.com/probelab/interview-cli/internal/config"
	"github.com/probelab/interview-cli/internal/domain"
	"github.com/probelab/interview-cli/internal/logging"
	"github.com/probelab/interview-cli/internal/ports"
	"github.com/probelab/interview-cli/internal/protocol"
	"github.com/probelab/interview-cli/internal/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	config       config.Config
	logger       *zap.Logger
	chat         ports.ChatClient
	notifier     *matrix.Client
	transcripts  ports.TranscriptRepository
	launcher     *server.Launcher
	systemPrompt string
	protocol     domain.Protocol
	clock        ports.Clock
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	systemPrompt, questions, err := protocol.Load()
	if err != nil {
		return nil, fmt.Errorf("load interview protocol: %w", err)
	}

	transcripts, err := tomlrepo.NewRepository(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("wire transcript repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return &app{
		config: cfg,
		logger: logging.New(cfg.LogFile),
		chat: &inference.Client{
			BaseURL:        cfg.Inference.BaseURL,
			HTTPClient:     http.DefaultClient,
			RequestTimeout: cfg.Inference.RequestTimeout,
			Temperature:    cfg.Inference.Temperature,
			MaxTokens:      cfg.Inference.MaxTokens,
		},
		notifier: &matrix.Client{
			Homeserver:   cfg.Matrix.Homeserver,
			AccessToken:  cfg.Matrix.AccessToken,
			RoomID:       cfg.Matrix.RoomID,
			InstanceName: cfg.Matrix.InstanceName,
			HTTPClient:   http.DefaultClient,
		},
		transcripts: transcripts,
		launcher: &server.Launcher{
			Config:   cfg.Server,
			StateDir: filepath.Join(homeDir, ".iv"),
		},
		systemPrompt: systemPrompt,
		protocol:     questions,
		clock:        ports.SystemClock{},
	}, nil
}
