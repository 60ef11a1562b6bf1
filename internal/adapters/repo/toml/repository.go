// Package toml stores rendered interview reports on disk plus a TOML index
// (interviews.toml) of completed sessions, one entry per model slug.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/probelab/interview-cli/internal/domain"
	"github.com/probelab/interview-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	indexFileName   = "interviews.toml"
	reportFileMode  = 0o644
	outputDirMode   = 0o755
	tempFilePattern = ".interviews-*.toml.tmp"
)

type Repository struct {
	outputDir string
	indexPath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.TranscriptRepository = (*Repository)(nil)

func NewRepository(outputDir string) (*Repository, error) {
	if outputDir == "" {
		return nil, errors.New("output directory is required")
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output directory: %w", err)
	}
	absDir = filepath.Clean(absDir)

	indexPath := filepath.Join(absDir, indexFileName)

	return &Repository{
		outputDir: absDir,
		indexPath: indexPath,
		mu:        lockForPath(indexPath),
	}, nil
}

// SaveReport writes the rendered report to interview-<slug>.md under the
// output directory, creating intermediate directories as needed, and returns
// the full path written.
func (r *Repository) SaveReport(ctx context.Context, model string, report string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, outputDirMode); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(r.outputDir, fmt.Sprintf("interview-%s.md", domain.Slug(model)))
	if err := os.WriteFile(path, []byte(report), reportFileMode); err != nil {
		return "", fmt.Errorf("write interview report: %w", err)
	}

	return path, nil
}

// Record upserts the entry in interviews.toml, keyed by slug.
func (r *Repository) Record(ctx context.Context, entry ports.TranscriptEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toSchema(entry)
	updated := false
	for i := range file.Interviews {
		if file.Interviews[i].Slug == encoded.Slug {
			file.Interviews[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Interviews = append(file.Interviews, encoded)
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]ports.TranscriptEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	file.applyDefaults()

	entries := make([]ports.TranscriptEntry, 0, len(file.Interviews))
	for _, entry := range file.Interviews {
		entries = append(entries, fromSchema(entry))
	}

	return entries, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read interview index: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode interview index: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(r.outputDir, outputDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode interview index: %w", err)
	}

	tempFile, err := os.CreateTemp(r.outputDir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp interview index: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp interview index: %w", err)
	}

	if err := tempFile.Chmod(reportFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp interview index: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp interview index: %w", err)
	}

	if err := os.Rename(tempName, r.indexPath); err != nil {
		return fmt.Errorf("replace interview index: %w", err)
	}

	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
