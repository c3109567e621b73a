package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"github.com/moffa90/go-nrfdfu/dfu"
)

// tomlConfig describes the TOML-configuration.
type tomlConfig struct {
	Dfu     dfuConf
	Logging logConf
}

// dfuConf describes the Dfu tuning block. These are bootloader
// configuration defaults rather than protocol constants and vary between
// bootloader versions.
type dfuConf struct {
	PacketReceiptNotify uint32 `toml:"packet-receipt-notify"`
	ChecksumRetries     int    `toml:"checksum-retries"`
	RequestRetries      int    `toml:"request-retries"`
	ResponseTimeout     string `toml:"response-timeout"`
	PacketSize          int    `toml:"packet-size"`
	RebootDelay         string `toml:"reboot-delay"`
}

// logConf describes the Logging-configuration block.
type logConf struct {
	Level  string
	Format string
}

// defaultConfiguration returns the configuration used when no file is given.
func defaultConfiguration() tomlConfig {
	return tomlConfig{
		Dfu: dfuConf{
			PacketReceiptNotify: 0,
			ChecksumRetries:     3,
			RequestRetries:      3,
			ResponseTimeout:     "5s",
			PacketSize:          20,
			RebootDelay:         "3s",
		},
		Logging: logConf{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadConfiguration reads the optional TOML file over the defaults and
// applies the logging settings.
func loadConfiguration(path string) (tomlConfig, error) {
	conf := defaultConfiguration()

	if path != "" {
		if _, err := toml.DecodeFile(path, &conf); err != nil {
			return conf, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if conf.Logging.Level != "" {
		level, err := log.ParseLevel(conf.Logging.Level)
		if err != nil {
			return conf, fmt.Errorf("unknown log level %q", conf.Logging.Level)
		}
		log.SetLevel(level)
	}

	switch conf.Logging.Format {
	case "", "text":
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return conf, fmt.Errorf("unknown log format %q", conf.Logging.Format)
	}

	return conf, nil
}

func (c dfuConf) responseTimeout() time.Duration {
	return parseDuration(c.ResponseTimeout, 5*time.Second)
}

func (c dfuConf) rebootDelay() time.Duration {
	return parseDuration(c.RebootDelay, 3*time.Second)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.WithField("value", value).Warn("Invalid duration, using default")
		return fallback
	}
	return d
}

// sessionOptions maps the tuning block onto session options.
func (c tomlConfig) sessionOptions(progress dfu.ProgressCallback) []dfu.Option {
	return []dfu.Option{
		dfu.WithPacketReceiptNotify(c.Dfu.PacketReceiptNotify),
		dfu.WithChecksumRetries(c.Dfu.ChecksumRetries),
		dfu.WithRequestRetries(c.Dfu.RequestRetries),
		dfu.WithResponseTimeout(c.Dfu.responseTimeout()),
		dfu.WithProgressCallback(progress),
	}
}
