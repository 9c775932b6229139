package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Data source
	DataPath  string `mapstructure:"data_path" yaml:"data_path"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Dashboard server
	Addr            string   `mapstructure:"addr" yaml:"addr"`
	PreviewRows     int      `mapstructure:"preview_rows" yaml:"preview_rows"`
	ReadTimeoutSec  int      `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `mapstructure:"write_timeout_sec" yaml:"write_timeout_sec"`
	AllowedOrigins  []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	// Logging: "text" or "json"
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Defaults returns the configuration used when no file or env value is set.
func Defaults() *Global {
	return &Global{
		DataPath:        "nba_games.csv",
		Delimiter:       "auto",
		Addr:            "127.0.0.1:8501",
		PreviewRows:     20,
		ReadTimeoutSec:  15,
		WriteTimeoutSec: 30,
		AllowedOrigins:  []string{"*"},
		LogFormat:       "text",
	}
}

// ValidDelimiter reports whether s is an accepted delimiter setting.
func ValidDelimiter(s string) bool {
	switch s {
	case "", "auto", "tab", `\t`, ",", ";", "|":
		return true
	}
	return false
}

// DelimiterRune returns the configured delimiter, or 0 to pick one by file extension.
func (c *Global) DelimiterRune() rune {
	switch c.Delimiter {
	case "tab", `\t`:
		return '\t'
	case ",", ";", "|":
		return []rune(c.Delimiter)[0]
	}
	return 0
}

// Dir returns ~/.courtside.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".courtside"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.courtside/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("COURTSIDE")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("sheet", d.Sheet)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("read_timeout_sec", d.ReadTimeoutSec)
	v.SetDefault("write_timeout_sec", d.WriteTimeoutSec)
	v.SetDefault("allowed_origins", d.AllowedOrigins)
	v.SetDefault("log_format", d.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if !ValidDelimiter(c.Delimiter) {
		return nil, fmt.Errorf("invalid delimiter %q (use auto, ',', ';', '|' or tab)", c.Delimiter)
	}
	if c.PreviewRows < 0 {
		c.PreviewRows = 0
	}
	return &c, nil
}
