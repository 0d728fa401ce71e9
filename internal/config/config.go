package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/storage"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskpad.db"
	DefaultStateName      = "taskpad_state.json"
	DefaultLogName        = "taskpad.log"
	AppDirName            = "taskpad"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Edit     string `toml:"edit"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	Clear    string `toml:"clear"`
	MoveUp   string `toml:"move_up"`
	MoveDown string `toml:"move_down"`
	Filter   string `toml:"filter"`
	Sort     string `toml:"sort"`
	Search   string `toml:"search"`
	Theme    string `toml:"theme"`
	Chart    string `toml:"chart"`
	Palette  string `toml:"palette"`
	Help     string `toml:"help"`
}

type Config struct {
	Backend       string `toml:"backend"`
	DBPath        string `toml:"db_path"`
	StatePath     string `toml:"state_path"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	DefaultFilter string `toml:"default_filter"`
	DefaultSort   string `toml:"default_sort"`
	Keys          Keymap `toml:"keys"`
}

func Default() Config {
	return Config{
		Backend:       storage.BackendSQLite,
		DBPath:        DefaultDBName,
		StatePath:     DefaultStateName,
		LogPath:       "",
		LogLevel:      "info",
		DefaultFilter: string(model.FilterAll),
		DefaultSort:   string(model.SortDefault),
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Edit:     "e",
			Up:       "k",
			Down:     "j",
			Toggle:   " ",
			Delete:   "d",
			Clear:    "C",
			MoveUp:   "K",
			MoveDown: "J",
			Filter:   "f",
			Sort:     "s",
			Search:   "/",
			Theme:    "t",
			Chart:    "tab",
			Palette:  ":",
			Help:     "?",
		},
	}
}

// ResolvePath picks the config file location: explicit flag, then
// TASKPAD_CONFIG, then the user config dir.
func ResolvePath(flagPath string) (string, error) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv("TASKPAD_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, AppDirName, DefaultConfigFileName), nil
}

// Load reads .env (if present), then the TOML file at path (writing defaults on
// first run), then applies TASKPAD_* overrides. Relative data paths are
// anchored to the config file's directory.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadOrCreate(path)
	if err != nil {
		return cfg, err
	}
	cfg = FromEnv(cfg)
	cfg = cfg.anchored(filepath.Dir(path))
	return cfg, cfg.Validate()
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.withFallbacks(), nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKPAD_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKPAD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKPAD_STATE_FILE"); ok {
		cfg.StatePath = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("TASKPAD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TASKPAD_DEFAULT_FILTER"); ok {
		cfg.DefaultFilter = v
	}
	if v, ok := getEnvString("TASKPAD_DEFAULT_SORT"); ok {
		cfg.DefaultSort = v
	}
	return cfg.withFallbacks()
}

func (c Config) Validate() error {
	switch c.Backend {
	case storage.BackendSQLite, storage.BackendJSON:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, storage.ErrUnknownBackend, c.Backend)
	}
	if c.DataPath() == "" {
		return fmt.Errorf("%w: empty data path for backend %q", ErrInvalidConfig, c.Backend)
	}
	return nil
}

// DataPath is the file the selected backend persists to.
func (c Config) DataPath() string {
	if c.Backend == storage.BackendJSON {
		return c.StatePath
	}
	return c.DBPath
}

func (c Config) Filter() model.Filter {
	f, err := model.ParseFilter(c.DefaultFilter)
	if err != nil {
		return model.FilterAll
	}
	return f
}

func (c Config) Sort() model.SortMode {
	s, err := model.ParseSortMode(c.DefaultSort)
	if err != nil {
		return model.SortDefault
	}
	return s
}

func (c Config) withFallbacks() Config {
	def := Default()
	if strings.TrimSpace(c.Backend) == "" {
		c.Backend = def.Backend
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = def.DBPath
	}
	if strings.TrimSpace(c.StatePath) == "" {
		c.StatePath = def.StatePath
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
	c.DefaultFilter = string(c.Filter())
	c.DefaultSort = string(c.Sort())
	c.Keys = c.Keys.withFallbacks(def.Keys)
	return c
}

func (c Config) anchored(dir string) Config {
	c.DBPath = anchor(dir, c.DBPath)
	c.StatePath = anchor(dir, c.StatePath)
	c.LogPath = anchor(dir, c.LogPath)
	return c
}

func anchor(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func (k Keymap) withFallbacks(def Keymap) Keymap {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.Quit, def.Quit)
	fill(&k.Add, def.Add)
	fill(&k.Edit, def.Edit)
	fill(&k.Up, def.Up)
	fill(&k.Down, def.Down)
	fill(&k.Toggle, def.Toggle)
	fill(&k.Delete, def.Delete)
	fill(&k.Clear, def.Clear)
	fill(&k.MoveUp, def.MoveUp)
	fill(&k.MoveDown, def.MoveDown)
	fill(&k.Filter, def.Filter)
	fill(&k.Sort, def.Sort)
	fill(&k.Search, def.Search)
	fill(&k.Theme, def.Theme)
	fill(&k.Chart, def.Chart)
	fill(&k.Palette, def.Palette)
	fill(&k.Help, def.Help)
	return k
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
