package config

import (
	"fmt"
	"strings"

	"github.com/osse101/spotifylink/internal/validation"
)

// envNames maps validated field names to the variables that feed them.
var envNames = map[string]string{
	"clientid":     "SPOTIFY_CLIENT_ID",
	"clientsecret": "SPOTIFY_CLIENT_SECRET",
	"redirecturi":  "SPOTIFY_REDIRECT_URI",
	"webbaseurl":   "WEB_BASE_URL",
}

// Warnings returns human readable notes for values that are missing or look
// wrong. Missing Spotify values are not fatal: the endpoints answer with an
// explicit configuration error instead.
func (c *Config) Warnings() []string {
	var warnings []string

	v := validation.Get()
	for _, target := range []interface{}{c.Spotify, struct {
		WebBaseURL string `validate:"required,url"`
	}{c.WebBaseURL}} {
		err := v.ValidateStruct(target)
		if err == nil {
			continue
		}
		for field, msg := range validation.FormatValidationError(err) {
			name := envNames[field]
			if name == "" {
				name = strings.ToUpper(field)
			}
			warnings = append(warnings, fmt.Sprintf("%s: %s", name, msg))
		}
	}

	if c.Database.Password == "" && c.Database.URL == "" {
		warnings = append(warnings, "DB_PASSWORD is empty - set DATABASE_URL or DB_PASSWORD outside local development")
	}

	return warnings
}
