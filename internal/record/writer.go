package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDir = "candidates"

	fileTimeLayout = "20060102_150405"
)

// FileWriter stores validated records as indented JSON files.
type FileWriter struct {
	dir    string
	now    func() time.Time
	logger *zap.Logger
}

// NewFileWriter returns a writer rooted at dir; an empty dir means DefaultDir.
func NewFileWriter(dir string, logger *zap.Logger) *FileWriter {
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWriter{dir: dir, now: time.Now, logger: logger}
}

// Persist validates rec and writes it to <slug>_<YYYYMMDD_HHMMSS>.json, returning the path.
func (w *FileWriter) Persist(rec *Record) (string, error) {
	if err := Validate(rec); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create records dir: %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.json", Slug(rec.Name), w.now().Format(fileTimeLayout)))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create record file: %w", err)
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		file.Close()
		return "", fmt.Errorf("encode record: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close record file: %w", err)
	}

	w.logger.Info("candidate record stored", zap.String("path", path))
	return path, nil
}

// Load reads a record previously written by Persist.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	return &rec, nil
}

// Slug turns a candidate name into a lowercase file name fragment.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.Join(strings.Fields(name), "_")) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "candidate"
	}
	return b.String()
}

// IsValidationError reports whether err came from record validation rather than I/O.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
