package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"checkers-local/engine"
	"checkers-local/types"
)

var (
	cfgFile = "checkers-local/config.json"
	logFile = "checkers-local/checkers.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare int `json:"light_square"`
	DarkSquare  int `json:"dark_square"`
	HumanPiece  int `json:"human"`
	AIPiece     int `json:"ai"`
	CursorBG    int `json:"cursor_bg"`
	SelectedBG  int `json:"selected_bg"`
	TargetFG    int `json:"target"`
	LastMoveBG  int `json:"last_move_bg"`
	Coordinates int `json:"coordinates"`
}

type ConfigSymbols struct {
	Man    rune `json:"man"`
	King   rune `json:"king"`
	Target rune `json:"target"`
}

type Theme struct {
	DrawCursorBackground   bool          `json:"draw_cursor_bg"`
	DrawLastMoveBackground bool          `json:"draw_last_move_bg"`
	ShowSquareNumbers      bool          `json:"show_square_numbers"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

// GameConfig holds the defaults offered on the setup screen.
type GameConfig struct {
	AIDepth         int    `json:"ai_depth"`
	ForceTakes      bool   `json:"force_takes"`
	FirstMove       string `json:"first_move"`
	DrawRepetitions int    `json:"draw_repetitions"`
	AIMinPauseMs    int    `json:"ai_min_pause_ms"`
}

// LogConfig controls the debug log. The terminal belongs to the UI, so logs
// always go to a file.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Config struct {
	Theme Theme      `json:"theme"`
	Game  GameConfig `json:"game"`
	Log   LogConfig  `json:"log"`
}

// InitConfig loads the user's config file if there is one and fills in the
// rest from DefaultConfig.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		if err = config.Validate(); err != nil {
			return nil, err
		}
		return &config, nil
	}
	return Load(absPath)
}

// Load reads a config file on top of DefaultConfig. A missing file is not an
// error.
func Load(filePath string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(filePath, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Man, c.Theme.Symbols.King, c.Theme.Symbols.Target} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if _, err := ParseOwner(c.Game.FirstMove); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Game.AIMinPauseMs < 0 {
		return &InvalidConfig{"ai_min_pause_ms cannot be negative"}
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
		}
	}
	if err := c.Settings().Validate(); err != nil {
		var invalid *engine.InvalidSettings
		if errors.As(err, &invalid) {
			return &InvalidConfig{invalid.Error()}
		}
		return err
	}
	return nil
}

// Settings converts the game section into engine settings.
func (c *Config) Settings() engine.Settings {
	first, err := ParseOwner(c.Game.FirstMove)
	if err != nil {
		first = types.NoOwner
	}
	return engine.Settings{
		AIDepth:         c.Game.AIDepth,
		ForceTakes:      c.Game.ForceTakes,
		FirstMove:       first,
		DrawRepetitions: c.Game.DrawRepetitions,
	}
}

// SetSettings stores s as the new defaults.
func (c *Config) SetSettings(s engine.Settings) {
	c.Game.AIDepth = s.AIDepth
	c.Game.ForceTakes = s.ForceTakes
	c.Game.FirstMove = s.FirstMove.String()
	c.Game.DrawRepetitions = s.DrawRepetitions
}

// MinPause is the shortest time the computer appears to think.
func (c *Config) MinPause() time.Duration {
	return time.Duration(c.Game.AIMinPauseMs) * time.Millisecond
}

// LogLevel returns the configured level, info when unset.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// LogPath returns the log file, creating its directory under the XDG state
// home when no file is configured.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(logFile)
}

// ParseOwner reads "human" or "ai".
func ParseOwner(s string) (types.Owner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "player", "you":
		return types.Human, nil
	case "ai", "computer", "cpu":
		return types.AI, nil
	}
	return types.NoOwner, fmt.Errorf("first move must be \"human\" or \"ai\", not %q", s)
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return c.SaveTo(absPath)
}

func (c *Config) SaveTo(filePath string) error {
	return saveCfgFile(filePath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err = json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
