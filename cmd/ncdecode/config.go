package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yamt/enetconf/schema"
)

// Framing modes.
const (
	framingNone    = "none"
	framingEOM     = "eom"
	framingChunked = "chunked"
	framingAuto    = "auto"
)

type config struct {
	Framing         string
	LogLevel        logrus.Level
	LogFormat       string
	StrictNamespace bool
	MaxSize         int64
}

func defaultConfig() config {
	return config{
		Framing:   framingNone,
		LogLevel:  logrus.InfoLevel,
		LogFormat: "text",
		MaxSize:   schema.DefaultMaxSize,
	}
}

type fileConfig struct {
	Framing         string `toml:"framing"`
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"`
	StrictNamespace bool   `toml:"strict_namespace"`
	MaxSize         int64  `toml:"max_size"`
}

// loadConfig overlays the keys defined in the TOML file at path onto cfg.
func loadConfig(path string, cfg config) (config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.Wrap(err, "load config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, errors.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("framing") {
		cfg.Framing = strings.TrimSpace(raw.Framing)
	}
	if meta.IsDefined("log_level") {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return config{}, errors.Wrap(err, "parse log_level")
		}
		cfg.LogLevel = lvl
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.TrimSpace(raw.LogFormat)
	}
	if meta.IsDefined("strict_namespace") {
		cfg.StrictNamespace = raw.StrictNamespace
	}
	if meta.IsDefined("max_size") {
		cfg.MaxSize = raw.MaxSize
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.Framing {
	case framingNone, framingEOM, framingChunked, framingAuto:
	default:
		return errors.Errorf("invalid framing %q", c.Framing)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q", c.LogFormat)
	}
	return nil
}

func (c config) logger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
