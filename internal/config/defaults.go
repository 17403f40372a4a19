package config

const (
	defaultConfigPath = "~/.config/sharp/config.toml"
	projectConfigName = "sharp.toml"
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultAccess     = "random"
	defaultServerName = "sharp"

	// LogLevelEnv overrides logging.level when set.
	LogLevelEnv = "SHARP_LOG_LEVEL"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Loader: Loader{
			Access: defaultAccess,
		},
		Server: Server{
			Name: defaultServerName,
		},
	}
}
