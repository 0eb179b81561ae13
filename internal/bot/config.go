package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of due reviews walked through per /review
	ReviewLimit int
	// Long polling timeout in seconds
	UpdateTimeout int
	// Log every request to the Telegram API
	Debug bool
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() BotConfig {
	return BotConfig{
		ReviewLimit:   5,
		UpdateTimeout: 60,
	}
}
