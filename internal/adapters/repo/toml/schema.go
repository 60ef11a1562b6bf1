package toml

import (
	"fmt"
	"time"

	"github.com/probelab/interview-cli/internal/ports"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int               `toml:"version"`
	Interviews []interviewSchema `toml:"interviews"`
}

type interviewSchema struct {
	Model                 string  `toml:"model"`
	Slug                  string  `toml:"slug"`
	File                  string  `toml:"file"`
	Questions             int     `toml:"questions"`
	TotalLatencySeconds   float64 `toml:"total_latency_seconds"`
	AverageLatencySeconds float64 `toml:"average_latency_seconds"`
	DurationSeconds       int64   `toml:"duration_seconds"`
	CompletedAt           string  `toml:"completed_at"`
}

func (f *fileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = currentSchemaVersion
	}
}

func (f fileSchema) validateVersion() error {
	if f.Version != 0 && f.Version != currentSchemaVersion {
		return fmt.Errorf("unsupported interview index version %d", f.Version)
	}
	return nil
}

func toSchema(entry ports.TranscriptEntry) interviewSchema {
	return interviewSchema{
		Model:                 entry.Model,
		Slug:                  entry.Slug,
		File:                  entry.File,
		Questions:             entry.Questions,
		TotalLatencySeconds:   entry.TotalLatency.Seconds(),
		AverageLatencySeconds: entry.AverageLatency.Seconds(),
		DurationSeconds:       int64(entry.Duration.Seconds()),
		CompletedAt:           formatTime(entry.CompletedAt),
	}
}

func fromSchema(entry interviewSchema) ports.TranscriptEntry {
	return ports.TranscriptEntry{
		Model:          entry.Model,
		Slug:           entry.Slug,
		File:           entry.File,
		Questions:      entry.Questions,
		TotalLatency:   time.Duration(entry.TotalLatencySeconds * float64(time.Second)),
		AverageLatency: time.Duration(entry.AverageLatencySeconds * float64(time.Second)),
		Duration:       time.Duration(entry.DurationSeconds) * time.Second,
		CompletedAt:    parseTime(entry.CompletedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
