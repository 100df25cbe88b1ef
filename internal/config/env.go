package config

import (
	"os"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "HOTARU_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "HOTARU_CONFIG_AUTH_TOKEN",
		desc:  "Set the session token for the catalog service.  Default: None",
		apply: func(c *Config, s string) { c.Auth.Token = s },
	},
	{
		name:  "HOTARU_CONFIG_SERVICE_URL",
		desc:  "Sets the catalog service endpoint.  Default: https://api.hotaru.stream/graphql",
		apply: func(c *Config, s string) { c.Service.URL = s },
	},
	{
		name:  "HOTARU_CONFIG_SERVICE_API_KEY",
		desc:  "Sets the catalog service API key.  Default: None",
		apply: func(c *Config, s string) { c.Service.APIKey = s },
	},
	{
		name:  "HOTARU_CONFIG_PLAYER_PATH",
		desc:  "Sets the path to the mpv binary.  Default: mpv",
		apply: func(c *Config, s string) { c.Player.Path = s },
	},
	{
		name:  "HOTARU_CONFIG_PLAYER_ARGS",
		desc:  "Sets additional arguments passed to the media player.  Default: None",
		apply: func(c *Config, s string) { c.Player.Args = s },
	},
	{
		name:  "HOTARU_CONFIG_STORAGE_PATH",
		desc:  "Sets the path to the local database file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) { c.Storage.Path = s },
	},
	{
		name:  "HOTARU_CONFIG_UI_START_TAB",
		desc:  "Sets the tab shown after profile selection.  One of: home, movies, series, music, wishlist.  Default: home",
		apply: func(c *Config, s string) { c.UI.StartTab = s },
	},
	{
		name:  "HOTARU_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "HOTARU_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}
