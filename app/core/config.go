package core

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/markstyle-ai/markstyle/app/core/srv"
	"github.com/markstyle-ai/markstyle/app/store/filestore"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr  string           `toml:"addr"`
	Log   Log              `toml:"log"`
	Store filestore.Config `toml:"store"`
	AI    srv.AIConfig     `toml:"ai"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("MARKSTYLE_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Store.DataDir = os.Getenv("MARKSTYLE_DATA_DIR")
	c.AI.FromENV()
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("MARKSTYLE_LOG_LEVEL")
	l.Path = os.Getenv("MARKSTYLE_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
