package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Aleph-Alpha/jsondb/v1/codec"
)

const extension = ".json"

// Logger defines the logging methods the file backend needs.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=filestore
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Backend stores each collection as a JSON array of documents in
// <Directory>/<name>.json. Writes go to a temporary file that is renamed
// over the old one, so a crash never leaves a partially written collection.
type Backend struct {
	cfg    Config
	logger Logger
	codec  codec.Config

	mu sync.Mutex
}

// New creates a file backend, creating cfg.Directory when it does not exist.
func New(cfg Config, logger Logger) (*Backend, error) {
	if cfg.Directory == "" {
		return nil, fmt.Errorf("filestore: directory must be set")
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = DefaultFileMode
	}
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", cfg.Directory, err)
	}

	logger.Info("file backend ready", nil, map[string]interface{}{
		"directory": cfg.Directory,
	})
	return &Backend{
		cfg:    cfg,
		logger: logger,
		codec:  codec.Default().With(codec.WithIndent("  ")),
	}, nil
}

func (b *Backend) path(name string) string {
	return filepath.Join(b.cfg.Directory, name+extension)
}

func collectionName(fileName string) (string, bool) {
	name, ok := strings.CutSuffix(fileName, extension)
	return name, ok && name != ""
}
