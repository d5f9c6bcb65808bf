// Package config loads and writes the .symcanon.yaml configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/symcanon"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".symcanon.yaml"

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Parser    symcanon.ParserConfig `yaml:"parser"`
	Variables []string              `yaml:"variables"`
	Server    Server                `yaml:"server"`
	Log       Log                   `yaml:"log"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type Log struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Parser: symcanon.DefaultParserConfig(),
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file at DefaultPath is not
// an error; a missing file anywhere else is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.idle_timeout":  c.Server.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalid, name)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Write stores cfg at path, replacing any existing file.
func Write(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath
	}
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
