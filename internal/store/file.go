package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/action-shelf/internal/model"
)

// FileGateway persists the collection as a pretty-printed JSON array.
type FileGateway struct {
	Path string
}

// NewFileGateway returns a gateway for the JSON file at path.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{Path: path}
}

func (g *FileGateway) ensure() error {
	if err := os.MkdirAll(filepath.Dir(g.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// Load reads the file, creating it with an empty array when missing. A blank
// file is empty; an undecodable one yields no records and ErrMalformed.
func (g *FileGateway) Load(ctx context.Context) ([]model.Action, error) {
	data, err := os.ReadFile(g.Path)
	if os.IsNotExist(err) {
		if err := g.ensure(); err != nil {
			return []model.Action{}, err
		}
		if err := os.WriteFile(g.Path, []byte("[]"), 0o644); err != nil {
			return []model.Action{}, fmt.Errorf("create %s: %w", g.Path, err)
		}
		return []model.Action{}, nil
	}
	if err != nil {
		return []model.Action{}, fmt.Errorf("read %s: %w", g.Path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Action{}, nil
	}

	var actions []model.Action
	if err := json.Unmarshal(data, &actions); err != nil {
		return []model.Action{}, fmt.Errorf("%w: %s: %v", ErrMalformed, g.Path, err)
	}
	if actions == nil {
		actions = []model.Action{}
	}
	return actions, nil
}

// Save writes the collection to a temp file and renames it into place.
func (g *FileGateway) Save(ctx context.Context, actions []model.Action) error {
	if actions == nil {
		actions = []model.Action{}
	}
	b, err := json.MarshalIndent(actions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode actions: %w", err)
	}
	if err := g.ensure(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(g.Path), ".actions-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), g.Path); err != nil {
		return fmt.Errorf("replace %s: %w", g.Path, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (g *FileGateway) Close() error {
	return nil
}
