package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// cliFlags holds the persistent flag values shared by all subcommands.
type cliFlags struct {
	channel    string
	outbox     string
	inbox      string
	configPath string
}

// config is the resolved external configuration handed to directive
// resolution. Empty fields mean "not configured"; built-in defaults apply
// downstream.
type config struct {
	Channel string `toml:"channel"`
	Outbox  string `toml:"outbox"`
	Inbox   string `toml:"inbox"`
	Journal string `toml:"journal"`
	Title   string `toml:"title"`
}

const defaultConfigPath = ".filetalk/config.toml"

// defaultTitle names this component on its ID card.
const defaultTitle = "FileTalk Form Producer"

// loadConfig resolves configuration with precedence: flags > FILETALK_*
// environment > config file. Missing config file is not an error; a file
// that exists but does not parse is.
func loadConfig(flags *cliFlags) (config, error) {
	var cfg config

	path := flags.configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit:
		return config{}, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg.Channel, "FILETALK_CHANNEL")
	applyEnv(&cfg.Outbox, "FILETALK_OUTBOX")
	applyEnv(&cfg.Inbox, "FILETALK_INBOX")
	applyEnv(&cfg.Journal, "FILETALK_JOURNAL")

	if flags.channel != "" {
		cfg.Channel = flags.channel
	}
	if flags.outbox != "" {
		cfg.Outbox = flags.outbox
	}
	if flags.inbox != "" {
		cfg.Inbox = flags.inbox
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
