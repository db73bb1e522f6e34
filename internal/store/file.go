package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"gopkg.in/yaml.v3"
)

type anchorFile struct {
	Anchors map[string]*domain.Anchor `json:"anchors" yaml:"anchors"`
}

type readingFile struct {
	Metadata     domain.CorpusMetadata      `json:"metadata" yaml:"metadata"`
	Readings     map[string]*domain.Reading `json:"readings" yaml:"readings"`
	CascadeRules map[string]any             `json:"cascade_rules,omitempty" yaml:"cascade_rules,omitempty"`
}

// FileStore keeps anchors and readings in two files. The format follows the
// extension: .yaml and .yml use YAML, anything else JSON. Each save replaces
// both files atomically.
type FileStore struct {
	anchorsPath  string
	readingsPath string
}

func NewFileStore(anchorsPath, readingsPath string) *FileStore {
	return &FileStore{anchorsPath: anchorsPath, readingsPath: readingsPath}
}

func (s *FileStore) Load(ctx context.Context) (*domain.Corpus, error) {
	var af anchorFile
	if err := readFile(s.anchorsPath, &af); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("anchors file %s: %w", s.anchorsPath, ErrNotFound)
		}
		return nil, err
	}

	var rf readingFile
	if err := readFile(s.readingsPath, &rf); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	c := &domain.Corpus{
		Anchors:      af.Anchors,
		Readings:     rf.Readings,
		Metadata:     rf.Metadata,
		CascadeRules: rf.CascadeRules,
	}
	c.Normalize()
	return c, nil
}

func (s *FileStore) Save(ctx context.Context, c *domain.Corpus) error {
	if err := writeFile(s.anchorsPath, anchorFile{Anchors: c.Anchors}); err != nil {
		return err
	}
	return writeFile(s.readingsPath, readingFile{
		Metadata:     c.Metadata,
		Readings:     c.Readings,
		CascadeRules: c.CascadeRules,
	})
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, v)
	} else {
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorpus, path, err)
	}
	return nil
}

// writeFile writes to a temp file in the target directory and renames it into
// place so readers never observe a partial file.
func writeFile(path string, v any) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
