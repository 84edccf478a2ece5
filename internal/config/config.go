package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is built once at start-up
// and handed to the components that need it.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir      string `env:"LOG_DIR"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"spotify-link"`
	Version     string `env:"VERSION" envDefault:"dev"`

	Spotify  SpotifyConfig
	Database DatabaseConfig

	// WebBaseURL is where the browser is sent after a successful link.
	WebBaseURL string `env:"WEB_BASE_URL" validate:"required,url"`

	// DiscordToken enables the "account linked" DM when set.
	DiscordToken string `env:"DISCORD_TOKEN"`

	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MigrateOnStart bool     `env:"MIGRATE_ON_START" envDefault:"true"`
}

// SpotifyConfig holds the OAuth client registration.
type SpotifyConfig struct {
	ClientID     string `env:"SPOTIFY_CLIENT_ID" validate:"required"`
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET" validate:"required"`
	RedirectURI  string `env:"SPOTIFY_REDIRECT_URI" validate:"required,url"`

	// RedirectBotToken binds callbacks to redirect URIs we issued.
	RedirectBotToken string `env:"SPOTIFY_REDIRECT_BOT_TOKEN"`

	// Endpoint overrides, mostly for tests and proxies.
	AuthURL  string `env:"SPOTIFY_AUTH_URL"`
	TokenURL string `env:"SPOTIFY_TOKEN_URL"`
}

// DatabaseConfig describes the PostgreSQL instance holding the link state.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"discord_bot"`

	// StateTable is the collection holding the link state document.
	StateTable      string `env:"LINK_STATE_TABLE" envDefault:"bot_state"`
	SerializeWrites bool   `env:"LINK_STORE_SERIALIZE_WRITES" envDefault:"false"`

	MaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	MaxConnIdle     time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.trim()

	if !tableNamePattern.MatchString(cfg.Database.StateTable) {
		return nil, fmt.Errorf("invalid LINK_STATE_TABLE value %q", cfg.Database.StateTable)
	}

	return cfg, nil
}

func (c *Config) trim() {
	for _, s := range []*string{
		&c.LogLevel, &c.LogFormat, &c.Environment, &c.WebBaseURL, &c.DiscordToken,
		&c.Spotify.ClientID, &c.Spotify.ClientSecret, &c.Spotify.RedirectURI,
		&c.Spotify.RedirectBotToken, &c.Spotify.AuthURL, &c.Spotify.TokenURL,
		&c.Database.URL, &c.Database.Host, &c.Database.Name, &c.Database.StateTable,
	} {
		*s = strings.TrimSpace(*s)
	}

	proxies := c.TrustedProxies[:0]
	for _, p := range c.TrustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	c.TrustedProxies = proxies
}

// DBConnString returns the PostgreSQL connection string. DATABASE_URL wins
// over the individual DB_* values.
func (c *Config) DBConnString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=disable",
	}
	if c.Database.Password != "" {
		u.User = url.UserPassword(c.Database.User, c.Database.Password)
	} else {
		u.User = url.User(c.Database.User)
	}
	return u.String()
}

// SpotifyConfigured reports whether the values needed to build an
// authorization URL are present.
func (c *Config) SpotifyConfigured() bool {
	return c.Spotify.ClientID != "" && c.Spotify.RedirectURI != ""
}
