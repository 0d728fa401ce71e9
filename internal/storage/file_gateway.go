package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keys used in the JSON state file. They match the browser storage keys of
// the web version so an exported localStorage dump can be used directly.
const (
	TasksKey = "tm_premium_v4"
	ThemeKey = "tm_theme"
)

// FileGateway keeps a flat key/value map in a JSON file. Each value is a
// string, and the task list is stored as an encoded JSON array under TasksKey.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: strings.TrimSpace(path)}
}

func (g *FileGateway) Path() string {
	return g.path
}

func (g *FileGateway) Close() error {
	return nil
}

func (g *FileGateway) LoadTasks(_ context.Context) ([]Record, error) {
	kv, err := g.read()
	if err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(kv[TasksKey])
	if raw == "" {
		return []Record{}, nil
	}
	var out []Record
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", TasksKey, err)
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

func (g *FileGateway) SaveTasks(_ context.Context, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return g.put(TasksKey, string(payload))
}

func (g *FileGateway) LoadTheme(_ context.Context) (string, error) {
	kv, err := g.read()
	if err != nil {
		return "", err
	}
	if theme := strings.TrimSpace(kv[ThemeKey]); theme != "" {
		return theme, nil
	}
	return DefaultTheme, nil
}

func (g *FileGateway) SaveTheme(_ context.Context, theme string) error {
	return g.put(ThemeKey, theme)
}

func (g *FileGateway) read() (map[string]string, error) {
	out := make(map[string]string)
	if g.path == "" {
		return nil, errors.New("storage: state file path is empty")
	}
	raw, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	return out, nil
}

// put rewrites the whole file with key set to value. The write goes through a
// temporary file and a rename so a crash never leaves a truncated file behind.
func (g *FileGateway) put(key, value string) error {
	if g.path == "" {
		return errors.New("storage: state file path is empty")
	}
	kv, err := g.read()
	if err != nil {
		// An unreadable file is replaced rather than blocking every save.
		kv = make(map[string]string)
	}
	kv[key] = value

	dir := filepath.Dir(g.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, g.path)
}
