package tui

import (
	"errors"
	"os"
	"path/filepath"

	"taskboard/internal/board"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const DefaultConfigFileName = "taskboard.toml"

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Advance   string `toml:"advance"`
	Delete    string `toml:"delete"`
	Edit      string `toml:"edit"`
	Describe  string `toml:"describe"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
	Sort      string `toml:"sort"`
	Direction string `toml:"direction"`
	Filter    string `toml:"filter"`
	FilterKey string `toml:"filter_key"`
	Reload    string `toml:"reload"`
}

// Config is the terminal client configuration. An empty BaseURL keeps tasks in
// memory for the session.
type Config struct {
	BaseURL       string `toml:"base_url"`
	SortBy        string `toml:"sort_by"`
	SortDirection string `toml:"sort_direction"`
	Language      string `toml:"language"`
	LogFile       string `toml:"log_file"`
	Keys          Keymap `toml:"keys"`
}

// LoadOrCreate reads the config at path, writing the defaults there first when
// the file does not exist. Keys missing from the file keep their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := DefaultConfig()

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
		return cfg, err
	}

	return cfg, nil
}

// BoardOptions turns the sort and language settings into board options.
func (c Config) BoardOptions() []board.Option {
	direction := board.Ascending
	if board.Direction(c.SortDirection) == board.Descending {
		direction = board.Descending
	}

	key := board.SortKey(c.SortBy)
	if key == "" {
		key = board.SortCreatedAt
	}

	opts := []board.Option{board.WithSort(key, direction)}

	if tag, err := language.Parse(c.Language); err == nil {
		opts = append(opts, board.WithLanguage(tag))
	}

	return opts
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}

func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:3000",
		SortBy:        string(board.SortCreatedAt),
		SortDirection: string(board.Ascending),
		Language:      "en",
		LogFile:       "taskboard.log",
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Advance:   " ",
			Delete:    "d",
			Edit:      "e",
			Describe:  "i",
			Confirm:   "enter",
			Cancel:    "esc",
			Sort:      "s",
			Direction: "r",
			Filter:    "/",
			FilterKey: "f",
			Reload:    "R",
		},
	}
}
