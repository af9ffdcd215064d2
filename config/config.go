package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "termchess/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare         int `json:"light_square"`
	DarkSquare          int `json:"dark_square"`
	LightSquareSelected int `json:"light_square_selected"`
	DarkSquareSelected  int `json:"dark_square_selected"`
	ValidMove           int `json:"valid_move"`
	PickedSquare        int `json:"picked_square"`
	WhitePiece          int `json:"white_piece"`
	BlackPiece          int `json:"black_piece"`
	LastMove            int `json:"last_move"`
}

type ConfigSymbols struct {
	King   rune `json:"king"`
	Queen  rune `json:"queen"`
	Rook   rune `json:"rook"`
	Bishop rune `json:"bishop"`
	Knight rune `json:"knight"`
	Pawn   rune `json:"pawn"`
}

type Theme struct {
	DrawLastMoveBackground bool          `json:"draw_last_move_bg"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

// EngineConfig holds settings for the engine goroutine and the render loop.
type EngineConfig struct {
	ClockSeconds int    `json:"clock_seconds"`
	LogLevel     string `json:"log_level"`
	TickMillis   int    `json:"tick_ms"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Engine EngineConfig `json:"engine"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.King, s.Queen, s.Rook, s.Bishop, s.Knight, s.Pawn} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Engine.ClockSeconds <= 0 {
		return &InvalidConfig{fmt.Sprintf("clock_seconds must be positive, got %d", c.Engine.ClockSeconds)}
	}
	if c.Engine.TickMillis <= 0 {
		return &InvalidConfig{fmt.Sprintf("tick_ms must be positive, got %d", c.Engine.TickMillis)}
	}
	if _, err := zerolog.ParseLevel(c.Engine.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log_level %q", c.Engine.LogLevel)}
	}
	return nil
}

// Save writes the config to the user's config directory and returns the path written.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
