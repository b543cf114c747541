package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Telegram bot credentials and polling behaviour
	Telegram struct {
		// Bot token issued by @BotFather
		BotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

		// Long-poll timeout for getUpdates (in seconds)
		PollTimeout int `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30"`
	}

	// Database configuration
	Database struct {
		// Path to the SQLite file; the directory is created on startup
		Path string `env:"DB_PATH" envDefault:"data/bookings.db"`
	}

	// Google Sheets destination (optional: empty SheetID disables the appender)
	Sheets struct {
		// Spreadsheet ID of the destination sheet
		SheetID string `env:"SHEET_ID"`

		// Service-account credentials: raw JSON or a path to the JSON file
		Credentials string `env:"GOOGLE_CREDENTIALS_JSON"`
	}

	// Browser-driven scraping behaviour
	Scraper struct {
		// Bound on each selector wait (in seconds)
		Timeout int `env:"SCRAPE_TIMEOUT" envDefault:"20"`

		// Run Chrome headless; disable for local debugging
		Headless bool `env:"SCRAPER_HEADLESS" envDefault:"true"`
	}

	// Google Maps rating lookup behaviour
	Maps struct {
		// Bound on each selector wait (in seconds)
		Timeout int `env:"MAPS_TIMEOUT" envDefault:"20"`

		// Directory for the name+city rating cache; empty uses a temp dir
		CacheDir string `env:"MAPS_CACHE_DIR"`
	}

	// Read-only HTTP API
	HTTP struct {
		// Listen address for the API server
		Addr string `env:"HTTP_ADDR" envDefault:":5250"`
	}

	// Inbound message queue
	Queue struct {
		// Buffer size before the poller starts dropping updates
		BufferSize int `env:"QUEUE_BUFFER_SIZE" envDefault:"64"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
